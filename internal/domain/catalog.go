package domain

// Catalog entities are owned elsewhere; the pricing core only reads names
// from them.

type Location struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type Hotel struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	LocationID *int64    `json:"location_id,omitempty" gorm:"index"`
	Location   *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	ImageURL   string    `json:"image_url,omitempty" gorm:"size:1024"`
}

type RoomType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type OccupancyType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type MealPlan struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:16"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type VehicleType struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Capacity int    `json:"capacity"`
}
