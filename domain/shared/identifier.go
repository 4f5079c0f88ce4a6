package shared

import "strconv"

// 标识符编解码 (Identifier Codec)
//
// 存储层主键是 MySQL 自增整数，领域层对外只暴露不透明字符串 ID。
// 这里是两种表示之间唯一的转换点：仓储在边界上调用 ParseID/FormatID，
// 领域对象和应用层只比较字符串，从不解析其结构。
// 若将来主键换成随机不透明标识，只需要改这一个文件。
//
// 约束：合法 ID 是 1..2^63-1 的十进制规范形式（无符号、无前导零），
// 保证 ParseID(FormatID(key)) == key 对所有合法主键成立。

// ParseID 将领域层字符串 ID 解析为存储层主键。
// 非法输入返回携带 ErrInvalidIdentifier 的领域错误，entity 用于错误上下文。
func ParseID(entity, id string) (uint64, error) {
	if id == "" || id[0] == '0' {
		return 0, NewInvalidIdentifierError(entity, id)
	}
	key, err := strconv.ParseUint(id, 10, 63)
	if err != nil || key == 0 {
		return 0, NewInvalidIdentifierError(entity, id)
	}
	return key, nil
}

// FormatID 将存储层主键格式化为领域层字符串 ID。
// 对任意合法主键都是全函数，输出即十进制形式。
func FormatID(key uint64) string {
	return strconv.FormatUint(key, 10)
}

// FormatNullableID 处理可空外键列：空值直接传递，不走解析路径。
func FormatNullableID(key *uint64) string {
	if key == nil {
		return ""
	}
	return FormatID(*key)
}
