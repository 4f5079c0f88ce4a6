package po

import "time"

// ProcessedEventPO 幂等账本
//
// at-least-once 投递下，同一信封可能被重投给同一个处理器；
// (event_id, handler_name) 上的唯一键保证每个处理器对每个事件
// 只生效一次，重投命中唯一键冲突后被直接跳过。
type ProcessedEventPO struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	EventID     string    `gorm:"size:64;uniqueIndex:uk_event_handler;not null"`
	HandlerName string    `gorm:"size:100;uniqueIndex:uk_event_handler;not null"`
	ProcessedAt time.Time `gorm:"autoCreateTime"`
}

func (ProcessedEventPO) TableName() string {
	return "processed_events"
}
