package models

// Attribute is a user-owned lookup row that recipes reference by id.
type Attribute interface {
	Tag | Ingredient
	GetID() uint
	GetName() string
}

type Tag struct {
	ID     uint   `gorm:"primarykey"`
	Name   string `gorm:"size:255;not null"`
	UserID uint   `gorm:"not null;index"`
}

func (t Tag) GetID() uint     { return t.ID }
func (t Tag) GetName() string { return t.Name }

type Ingredient struct {
	ID     uint   `gorm:"primarykey"`
	Name   string `gorm:"size:255;not null"`
	UserID uint   `gorm:"not null;index"`
}

func (i Ingredient) GetID() uint     { return i.ID }
func (i Ingredient) GetName() string { return i.Name }

// NewAttribute builds an attribute row stamped with its owner.
func NewAttribute[T Attribute](name string, userID uint) T {
	var item T
	switch a := any(&item).(type) {
	case *Tag:
		a.Name, a.UserID = name, userID
	case *Ingredient:
		a.Name, a.UserID = name, userID
	}
	return item
}
