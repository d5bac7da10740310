package interp

// Fixed spoken messages for terminal outcomes. Every failure path must be
// audible: silence, or a bare HTTP error the provider cannot interpret,
// strands the live call.
const (
	msgNotConfigured   = "This number has not been configured yet. Goodbye."
	msgAmbiguousNumber = "This number is not configured correctly. Goodbye."
	msgEmptyFlow       = "The call flow for this number is empty. Goodbye."
	msgNodeNotFound    = "Sorry, the next step of this call could not be found. Goodbye."
	msgInvalidNode     = "Sorry, this call flow contains an invalid step. Goodbye."
	msgUnavailable     = "Sorry, we are unable to take your call right now. Please try again later."
	msgNothingToSay    = "Sorry, there is no message configured for this step."
	msgDefaultGoodbye  = "Sorry, we did not receive a valid selection. Goodbye."
)
