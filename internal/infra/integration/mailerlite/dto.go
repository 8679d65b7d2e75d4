package mailerlite

// CreateSubscriberInput is the clean DTO the rest of the app uses. The
// client converts it into MailerLite's wire format.
type CreateSubscriberInput struct {
	Email      string
	Fields     map[string]string
	Groups     []string
	Subscribed bool
}

// Wire payload for POST /subscribers. The endpoint is an upsert on
// MailerLite's side: an existing email comes back 200 instead of 201.
type upsertSubscriberRequest struct {
	Email  string            `json:"email"`
	Status string            `json:"status"`
	Fields map[string]string `json:"fields,omitempty"`
	Groups []string          `json:"groups,omitempty"`
}

// Subscriber is the provider's record for a contact. Fields the response
// omits stay zero-valued; callers must not assume every field is present.
type Subscriber struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Status       string         `json:"status"`
	Source       string         `json:"source,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
	Groups       []Group        `json:"groups,omitempty"`
	SubscribedAt string         `json:"subscribed_at,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Responses arrive wrapped in a "data" envelope.
type subscriberResponse struct {
	Data Subscriber `json:"data"`
}

type subscriberListResponse struct {
	Data []Subscriber `json:"data"`
}
