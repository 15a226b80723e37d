package blogservice

// Decision is the outcome of the blog ownership check.
type Decision int

const (
	// Allowed means the caller is the recorded owner of the blog.
	Allowed Decision = iota
	// Forbidden means the blog has an owner and the caller is not it.
	Forbidden
	// Unresolvable means the blog has no owner on record or no caller
	// identity was supplied, so ownership cannot be established.
	Unresolvable
)

// Decide compares a verified caller identity against the recorded owner of a
// blog. Allowed requires exact equality of the two ids; there is no
// super-user bypass.
func Decide(callerID *int, blog *Blog) Decision {
	if callerID == nil || blog.Owner == nil {
		return Unresolvable
	}

	if *callerID != blog.Owner.ID {
		return Forbidden
	}

	return Allowed
}
