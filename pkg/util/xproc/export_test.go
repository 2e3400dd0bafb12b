package xproc

import (
	"os/user"
	"sync"
)

// ResetProcessName 重置进程名称缓存（仅用于测试）。
func ResetProcessName() {
	processNameOnce = sync.Once{}
	processNameValue = ""
}

// ResetUserName 重置用户名缓存（仅用于测试）。
func ResetUserName() {
	userNameOnce = sync.Once{}
	userNameValue = ""
}

// SetIdentityFuncs 替换身份解析函数并返回恢复函数（仅用于测试）。
func SetIdentityFuncs(host func() (string, error), current func() (*user.User, error)) func() {
	origHost, origUser := osHostname, currentUser
	osHostname, currentUser = host, current
	return func() {
		osHostname, currentUser = origHost, origUser
	}
}

// SetExecutable 替换 os.Executable 并返回恢复函数（仅用于测试）。
func SetExecutable(fn func() (string, error)) func() {
	orig := osExecutable
	osExecutable = fn
	return func() { osExecutable = orig }
}

