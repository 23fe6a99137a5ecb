package entity

// Gender is also the value space of a user's stated preference, with
// InterestEveryone as the no-filter sentinel.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	InterestEveryone Gender = "everyone"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type User struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	Name         string  `gorm:"not null;column:name" json:"name"`
	Email        string  `gorm:"unique;not null;column:email" json:"email"`
	Username     string  `gorm:"unique;column:username" json:"username"`
	Password     string  `gorm:"not null;column:password" json:"-"`
	Gender       Gender  `gorm:"type:varchar(16);not null;column:gender" json:"gender"`
	InterestedIn Gender  `gorm:"type:varchar(16);not null;column:interested_in" json:"interested_in"`
	Bio          string  `gorm:"type:text;column:bio" json:"bio"`
	Photos       []Photo `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

// Photo references an image in object storage. Upload mechanics live
// outside this service; rows only carry the key and its public URL.
type Photo struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Position  int    `gorm:"column:position;not null" json:"position"`
	ObjectKey string `gorm:"column:object_key;not null" json:"-"`
	URL       string `gorm:"column:url;not null" json:"url"`
}
