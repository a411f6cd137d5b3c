package req

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

// A Parser decodes and validates request payloads.
type Parser struct {
	dec *schema.Decoder
	validator
}

// NewParser constructs a *Parser ignoring query params no struct field names.
func NewParser() *Parser {
	return &Parser{
		dec:       newQueryParamDecoder(),
		validator: newValidator(),
	}
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning [ValidationErrors] if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.dec.Decode(structPtr, params); err != nil {
		return fmt.Errorf("personachat/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("personachat/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
