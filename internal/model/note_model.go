package model

type Note struct {
	Id      int    `gorm:"primaryKey;autoIncrement"`
	Title   string `gorm:"type:text;not null"`
	Content string `gorm:"type:text;not null"`
}

func (Note) TableName() string {
	return "notes"
}
