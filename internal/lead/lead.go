package lead

import "time"

// Status represents a lead's position in the sales funnel.
type Status string

const (
	StatusNew         Status = "New"
	StatusContacted   Status = "Contacted"
	StatusQualified   Status = "Qualified"
	StatusProposal    Status = "Proposal Sent"
	StatusNegotiation Status = "Negotiation"
	StatusClosedWon   Status = "Closed - Won"
	StatusClosedLost  Status = "Closed - Lost"
)

// Statuses lists every valid lead status, for parameter validation.
func Statuses() []Status {
	return []Status{
		StatusNew, StatusContacted, StatusQualified, StatusProposal,
		StatusNegotiation, StatusClosedWon, StatusClosedLost,
	}
}

// Terminal reports whether the lead has left the active funnel.
func (s Status) Terminal() bool {
	return s == StatusClosedWon || s == StatusClosedLost
}

// Qualified reports whether the lead has progressed past first contact but
// not yet closed.
func (s Status) Qualified() bool {
	return s == StatusQualified || s == StatusProposal || s == StatusNegotiation
}

// Channel is the acquisition source of a lead.
type Channel string

const (
	ChannelWebsite     Channel = "Website"
	ChannelReferral    Channel = "Referral"
	ChannelSocialMedia Channel = "Social Media"
	ChannelEmail       Channel = "Email Marketing"
	ChannelWhatsApp    Channel = "WhatsApp"
	ChannelColdCall    Channel = "Cold Call"
)

// Channels lists every valid lead source, for parameter validation.
func Channels() []Channel {
	return []Channel{
		ChannelWebsite, ChannelReferral, ChannelSocialMedia,
		ChannelEmail, ChannelWhatsApp, ChannelColdCall,
	}
}

// Interaction is one entry in a lead's append-only contact log.
type Interaction struct {
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Summary string    `json:"summary"`
}

// Lead is a sales prospect from a snapshot.
type Lead struct {
	ID                 string        `json:"id"`
	Company            string        `json:"company"`
	ContactName        string        `json:"contactName"`
	ContactEmail       string        `json:"contactEmail"`
	ContactPhone       string        `json:"contactPhone,omitempty"`
	Source             Channel       `json:"source"`
	Status             Status        `json:"status"`
	PotentialValue     float64       `json:"potentialValue"`
	AssignedTo         string        `json:"assignedTo,omitempty"`
	CreatedDate        time.Time     `json:"createdDate"`
	LastContactedDate  time.Time     `json:"lastContactedDate"`
	Scheme             string        `json:"scheme,omitempty"`
	InteractionHistory []Interaction `json:"interactionHistory"`
}
