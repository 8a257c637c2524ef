package models

import "go.mongodb.org/mongo-driver/bson"

// ProfileUpdate carries one optional value per editable profile field.
// A nil pointer means the field was not submitted and must stay untouched.
type ProfileUpdate struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Gender     *string `json:"gender"`
	DOB        *string `json:"dob"`
	BloodType  *string `json:"bloodType"`
	Height     *string `json:"height"`
	Weight     *string `json:"weight"`
	Allergies  *string `json:"allergies"`
	Conditions *string `json:"conditions"`

	// ProfileImg is set by the server after an upload, never by the client.
	ProfileImg *string `json:"-"`
}

// ProfileFields lists the submitted field names accepted by update-profile,
// in the same order as the ProfileUpdate struct.
var ProfileFields = []string{
	"fullName", "email", "phone", "address", "gender", "dob",
	"bloodType", "height", "weight", "allergies", "conditions",
}

// Field returns the slot for a field name from ProfileFields (or "profileImg").
func (u *ProfileUpdate) Field(name string) **string {
	switch name {
	case "fullName":
		return &u.FullName
	case "email":
		return &u.Email
	case "phone":
		return &u.Phone
	case "address":
		return &u.Address
	case "gender":
		return &u.Gender
	case "dob":
		return &u.DOB
	case "bloodType":
		return &u.BloodType
	case "height":
		return &u.Height
	case "weight":
		return &u.Weight
	case "allergies":
		return &u.Allergies
	case "conditions":
		return &u.Conditions
	case "profileImg":
		return &u.ProfileImg
	}
	return nil
}

// Set returns the $set document for the present fields only.
func (u ProfileUpdate) Set() bson.M {
	set := bson.M{}
	for _, name := range ProfileFields {
		if v := *u.Field(name); v != nil {
			set[name] = *v
		}
	}
	if u.ProfileImg != nil {
		set["profileImg"] = *u.ProfileImg
	}
	return set
}

func (u ProfileUpdate) IsEmpty() bool {
	return len(u.Set()) == 0
}
