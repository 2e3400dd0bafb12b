package xrotate

import "strings"

// goReferenceTokens 出现任一即认为 pattern 已经是 Go 时间布局。
var goReferenceTokens = []string{"2006", "01", "02", "15"}

// ConvertLayout 把 .NET 风格的自定义日期时间格式（如 "yyyyMMdd"）转换为 Go 时间布局。
//
// 支持的记号：
//
//	yyyy yy y        年
//	MMMM MMM MM M    月
//	dddd ddd dd d    日 / 星期
//	HH H hh h        时（24 / 12 小时制）
//	mm m ss s        分 / 秒
//	f..f F..F        小数秒（必须紧跟 '.' 或 ','，否则丢弃）
//	tt t             AM/PM
//	zzz zz z K       时区偏移
//
// 单引号或双引号括起的内容、以及 '\' 后的单个字符原样输出；其余字符视为字面量。
// 已包含 Go 参考时间记号（2006、01、02、15）的 pattern 原样返回。
//
// 注意：Go 布局没有转义语法，字面量中出现的 Go 记号（如 "Jan"、"1"）仍会被格式化。
func ConvertLayout(pattern string) string {
	for _, tok := range goReferenceTokens {
		if strings.Contains(pattern, tok) {
			return pattern
		}
	}

	var b strings.Builder
	rs := []rune(pattern)
	var prev rune
	write := func(s string) {
		if s == "" {
			return
		}
		b.WriteString(s)
		prev = rune(s[len(s)-1])
	}

	for i := 0; i < len(rs); {
		c := rs[i]
		switch c {
		case '\'', '"':
			j := i + 1
			for j < len(rs) && rs[j] != c {
				j++
			}
			write(string(rs[i+1 : j]))
			i = j + 1
			continue
		case '\\':
			if i+1 < len(rs) {
				write(string(rs[i+1]))
			}
			i += 2
			continue
		case '%':
			i++
			continue
		}

		n := 1
		for i+n < len(rs) && rs[i+n] == c {
			n++
		}
		if tok, ok := layoutToken(c, n, prev); ok {
			write(tok)
		} else {
			write(strings.Repeat(string(c), n))
		}
		i += n
	}
	return b.String()
}

// layoutToken 返回 n 个连续字符 c 对应的 Go 布局片段。
func layoutToken(c rune, n int, prev rune) (string, bool) {
	switch c {
	case 'y':
		if n <= 2 {
			return "06", true
		}
		return "2006", true
	case 'M':
		return pick(n, "1", "01", "Jan", "January"), true
	case 'd':
		return pick(n, "2", "02", "Mon", "Monday"), true
	case 'H':
		return "15", true
	case 'h':
		return pick(n, "3", "03"), true
	case 'm':
		return pick(n, "4", "04"), true
	case 's':
		return pick(n, "5", "05"), true
	case 'f', 'F':
		if prev != '.' && prev != ',' {
			return "", true
		}
		digit := "0"
		if c == 'F' {
			digit = "9"
		}
		return strings.Repeat(digit, min(n, 9)), true
	case 't':
		return "PM", true
	case 'z':
		if n <= 2 {
			return "-07", true
		}
		return "-07:00", true
	case 'K':
		return "Z07:00", true
	case 'g':
		return "", true
	default:
		return "", false
	}
}

// pick 按重复次数选择候选，超出候选数量时取最后一个。
func pick(n int, choices ...string) string {
	if n > len(choices) {
		n = len(choices)
	}
	return choices[n-1]
}
