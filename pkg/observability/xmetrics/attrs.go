package xmetrics

// 常用属性 Key。
const (
	// KeyFile 文件名
	KeyFile = "file"
	// KeyStage 失败发生的阶段（open/write/close/consumer）
	KeyStage = "stage"
	// KeyPath 写入路径（async/fallback）
	KeyPath = "path"
	// KeyFormatter 格式化器名称
	KeyFormatter = "formatter"
)

// String 创建字符串属性。
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Bool 创建布尔属性。
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Int 创建整数属性。
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

// Int64 创建 int64 属性。
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

// Stage 创建失败阶段属性。
func Stage(stage string) Attr {
	return String(KeyStage, stage)
}

// Any 创建任意类型属性。
func Any(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}
