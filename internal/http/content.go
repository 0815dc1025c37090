package httpapi

// whatWeDoCard is one example shown on the informational what-we-do step.
type whatWeDoCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

var whatWeDoCards = []whatWeDoCard{
	{Icon: "sign", Title: "Put Out & Retrieve Signage", Description: "Get your For Sale signs in the ground or your open house directional signs out before showings? We'll handle placing and retrieving them.", Action: "We'll get them up."},
	{Icon: "home", Title: "Lights Left On?", Description: "Buyer's agent left the lights on and your sellers want you to turn them off?", Action: "We can help."},
	{Icon: "key", Title: "Lockbox Check", Description: "Need someone to verify the lockbox code is working before your showing?", Action: "We've got it."},
	{Icon: "art", Title: "Last-Minute Staging Touch", Description: "Need some last-minute decorations to complete a room before your showing?", Action: "Consider it done."},
	{Icon: "drop", Title: "Property Check", Description: "Worried about a potential leak after a storm?", Action: "We're on it."},
	{Icon: "balloon", Title: "Last-Minute Supplies", Description: "Need balloons picked up for an open house that starts in two hours?", Action: "We can run out."},
	{Icon: "doc", Title: "Document Delivery", Description: "Need documents from your office to the title company before they close?", Action: "We'll rush it over."},
	{Icon: "key", Title: "Key Exchange", Description: "Need keys delivered from the seller's agent to your buyer?", Action: "We handle it."},
	{Icon: "house", Title: "Final Walkthrough Prep", Description: "Need someone to do a final check and minor touch-ups before the walkthrough?", Action: "Let us take care of it."},
}
