package refdata

// Locality is one deduplicated city/town entry from the pincode reference
// feed. Within one state, the (City, District) pair identifies it.
type Locality struct {
	Pincode  string
	City     string
	District string
	State    string
}
