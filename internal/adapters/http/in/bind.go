package in

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

var validate = validator.New()

// bindAndValidate parses the request body into dst and runs the
// go-playground/validator struct-tag rules mmodel's CreateXInput/
// UpdateXInput types carry.
func bindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return constant.ValidationError{Message: "malformed request body"}
	}

	if err := validate.Struct(dst); err != nil {
		return constant.ValidationError{Message: err.Error()}
	}

	return nil
}

// rejectFields returns a ValidationError when the request body carries
// any of the named keys. Used by update handlers for fields that are
// immutable after create: a typed DTO would silently drop them on
// unmarshal, and immutable fields must be refused, not ignored.
func rejectFields(c *fiber.Ctx, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return constant.ValidationError{Message: "malformed request body"}
	}

	for _, f := range fields {
		if _, ok := raw[f]; ok {
			return constant.ValidationError{Field: f, Message: f + " is immutable and cannot be updated"}
		}
	}

	return nil
}

const labelQueryPrefix = "label."

// parseLabelSelectors collects "label.<key>=<value>" query parameters
// into a label selector map.
func parseLabelSelectors(c *fiber.Ctx) mmodel.Labels {
	var selectors mmodel.Labels

	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if len(k) > len(labelQueryPrefix) && k[:len(labelQueryPrefix)] == labelQueryPrefix {
			if selectors == nil {
				selectors = mmodel.Labels{}
			}

			selectors[k[len(labelQueryPrefix):]] = string(value)
		}
	})

	return selectors
}

// pathID parses the named path parameter as a midentifier.ID.
func pathID(c *fiber.Ctx, name string) (midentifier.ID, error) {
	id, err := midentifier.FromHex(c.Params(name))
	if err != nil {
		return midentifier.Nil, constant.ValidationError{Field: name, Message: "malformed identifier"}
	}

	return id, nil
}
