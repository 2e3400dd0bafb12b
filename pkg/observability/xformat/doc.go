// Package xformat 定义日志记录契约和文本格式化策略。
//
// # 记录契约
//
//   - [Level]: Trace < Debug < Information < Warning < Error < Critical < None
//   - [Record]: 级别、类别、[EventID]、负载、错误和渲染闭包 [RenderFunc]
//   - [ScopeProvider]: 按压栈顺序枚举作用域；[WithScope]/[ScopesFromContext]
//     提供基于 context 的默认实现
//
// # 格式化器
//
// [Formatter] 把一条记录渲染为以换行结尾的单行文本。三种内置实现：
//
//   - [Basic]（"basic"）: [pid] [时间] [级别代码] [用户] 类别[事件] => 作用域: 消息 异常
//   - [CMTrace]（"cmtrace"）: CMTrace 查看器兼容格式
//   - [JSON]（"json"）: 每行一个 JSON 对象
//
// 共同规则：
//
//   - 消息为空且没有错误时不输出任何内容
//   - 消息和异常中的换行被折叠（Basic 折叠为空格，CMTrace 折叠为 ", "），
//     JSON 依靠转义保持单行
//   - 可选字段受 [Options] 控制；文本格式整段省略，JSON 保留键并输出 null
//
// # 注册表
//
// [Registry] 按名称（大小写不敏感）保存格式化器，[Registry.Resolve] 的兜底链为
// 配置名 → basic → 最先注册者。宿主可注册任意实现了 [Formatter] 的类型。
//
// # 配置热更新
//
// 内置格式化器实现 [Configurable]：配置以 *Options 整体原子替换，
// 正在进行的 Format 调用看到的始终是完整的旧配置或完整的新配置。
package xformat
