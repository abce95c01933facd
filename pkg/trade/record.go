package trade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// TradeRecord is one immutable bilateral trade-flow observation:
// Origin exported Volume (net weight) to Destination in Year.
type TradeRecord struct {
	Year        int     `json:"year" validate:"required,min=1900,max=2100"`
	Origin      string  `json:"origin" validate:"required,min=1,max=100"`
	Destination string  `json:"destination" validate:"required,min=1,max=100"`
	Volume      float64 `json:"volume" validate:"gte=0"`
}

// Normalize trims whitespace from country names, matching the source
// data cleaning applied to reporter/partner columns.
func (r *TradeRecord) Normalize() {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
}

// Validate checks the record against its struct tags.
func (r *TradeRecord) Validate() error {
	if r == nil {
		return errors.New("trade record cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s check", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("invalid trade record: %s", strings.Join(msgs, "; "))
	}
	return err
}
