package xproc

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
)

// 可替换的系统调用，仅用于测试。
var (
	osExecutable = os.Executable
	osHostname   = os.Hostname
	currentUser  = user.Current
)

// 进程身份在首次调用时解析并缓存。
var (
	processNameOnce  sync.Once
	processNameValue string

	userNameOnce  sync.Once
	userNameValue string
)

// ProcessID 返回当前进程 ID。
func ProcessID() int {
	return os.Getpid()
}

// baseName 提取路径的基础文件名，并去掉 Windows 可执行文件扩展名。
// 对 [filepath.Base] 返回的特殊值（"."、".."、路径分隔符）返回空字符串。
func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".exe") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func resolveProcessName() string {
	if exe, err := osExecutable(); err == nil && exe != "" {
		if name := baseName(exe); name != "" {
			return name
		}
	}
	if len(os.Args) == 0 || os.Args[0] == "" {
		return ""
	}
	return baseName(os.Args[0])
}

// ProcessName 返回当前进程名称（不含路径和 .exe 后缀）。
//
// 优先使用 [os.Executable]，失败时回退到 os.Args[0]。
// 所有来源均无效时返回空字符串，调用方据此兜底（如 xrotate 使用 "app" 作为文件前缀）。
// 结果（包括空字符串）在首次调用后缓存。
func ProcessName() string {
	processNameOnce.Do(func() {
		processNameValue = resolveProcessName()
	})
	return processNameValue
}

func resolveUserName() string {
	domain, _ := osHostname()
	if i := strings.IndexByte(domain, '.'); i > 0 {
		domain = domain[:i]
	}

	name := ""
	if u, err := currentUser(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = os.Getenv("USERNAME")
	}

	// Windows 上 Username 已是 DOMAIN\user 形式
	if strings.Contains(name, `\`) {
		return name
	}
	return domain + `\` + name
}

// UserName 返回运行进程的操作系统用户，格式为 "域\用户"。
//
// 非 Windows 平台没有登录域的概念，使用短主机名代替。
// 任一部分无法获取时保留为空，例如 `\alice` 或 `host\`。
func UserName() string {
	userNameOnce.Do(func() {
		userNameValue = resolveUserName()
	})
	return userNameValue
}
