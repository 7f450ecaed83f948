package handler

import (
	"fmt"
	"strconv"
	"strings"
)

// messageResponse is the envelope for plain success and error messages.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Approved bool   `json:"approved"`
}

type registerRequest struct {
	Username          string  `json:"username"            validate:"required,max=64"`
	Email             string  `json:"email"               validate:"required,email"`
	Password          string  `json:"password"            validate:"required,min=6,max=72"`
	HospitalName      string  `json:"hospital_name"       validate:"required"`
	ContactNumber     string  `json:"contact_number"      validate:"required"`
	Specialization    string  `json:"specialization"`
	YearsOfExperience flexInt `json:"years_of_experience" validate:"gte=0,lte=80" swaggertype:"integer"`
}

// flexInt accepts a JSON number or a numeric string. Web forms send numeric
// inputs as strings, and an untouched field as "". Empty and null decode to 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" {
		*n = 0
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not an integer: %q", raw)
	}
	*n = flexInt(v)
	return nil
}
