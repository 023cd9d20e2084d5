package request

type CreateTourRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Location    string  `json:"location" validate:"required,min=2,max=200"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Duration    string  `json:"duration" validate:"required,max=50"`
	Spots       int     `json:"spots" validate:"required,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CoverPhoto  *string `json:"coverPhoto,omitempty" validate:"omitempty,url"`
}

type UpdateTourRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration    *string  `json:"duration,omitempty" validate:"omitempty,max=50"`
	Spots       *int     `json:"spots,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
}
