package review

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/devtna/jlsfinder/core"
)

// Review is never updated in place: it is created once and deleted by its
// author or an admin. UserName is a snapshot of the reviewer's display name
// at submission time; the SchoolID/UserID references may dangle.
type Review struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"schoolId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview contains the information a reviewer submits.
type NewReview struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.Comment = core.CleanString(nr.Comment)
	return validate.Struct(nr)
}
