package db_models

// KvRecord is one row of the key/value snapshot table backing the
// persistence layer when the postgres driver is selected. Values are the
// same JSON text the other storage backends hold.
type KvRecord struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (KvRecord) TableName() string {
	return "kv_records"
}
