// Package xconf 提供配置加载、反序列化和热重载，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// Reload 通过互斥锁串行化，解析成功后用 atomic.Pointer 原子替换 koanf 实例；
// 解析失败时保留旧配置。Client 返回快照指针，Reload 后旧指针仍可用但数据过期，
// 每次需要时调用 Client() 即可。
//
// # 配置监视
//
// [Watch] 基于 fsnotify 监视配置文件所在目录，内置防抖，支持 vim/emacs 原子写入。
// 从 bytes 创建的 Config 不支持监视。
//
//	cfg, _ := xconf.New("/etc/xfilelogd/config.yaml")
//	w, _ := xconf.Watch(cfg, func(c xconf.Config, err error) {
//		// 重新读取配置
//	})
//	w.Start()
//	defer w.Stop()
package xconf
