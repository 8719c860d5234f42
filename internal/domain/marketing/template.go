package marketing

import (
	"regexp"
	"slices"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Channel is a template library; each channel is its own collection
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelProduct  Channel = "product"
)

// Channels lists every template library
var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelProduct}

// ParseChannel validates a channel name
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !slices.Contains(Channels, c) {
		return "", shared.InvalidInput("unknown template channel %q", s)
	}
	return c, nil
}

// CollectionName returns the store collection backing the channel
func (c Channel) CollectionName() string {
	return string(c) + "_templates"
}

// Template is a reusable message or product description body with
// {{placeholder}} variables.
type Template struct {
	ID        string    `json:"id" validate:"required"`
	Channel   Channel   `json:"channel" validate:"oneof=email sms whatsapp product"`
	Name      string    `json:"name" validate:"required"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Category  string    `json:"category,omitempty"`
	Variables []string  `json:"variables,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// ExtractVariables returns the distinct placeholders used in text, in order
func ExtractVariables(text string) []string {
	var vars []string
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		if !slices.Contains(vars, m[1]) {
			vars = append(vars, m[1])
		}
	}
	return vars
}

// Render substitutes values for placeholders; unknown ones are kept
func (t Template) Render(values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(t.Body, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}

// TemplatePatch is a partial Template update
type TemplatePatch struct {
	Name      *string    `json:"name,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	Body      *string    `json:"body,omitempty"`
	Category  *string    `json:"category,omitempty"`
	Variables *[]string  `json:"variables,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
