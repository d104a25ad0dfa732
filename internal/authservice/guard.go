package authservice

// Authorize reports whether the resolved identity may mutate a resource
// whose stored owner is ownerID. It is the single decision point for delete
// authorization; updates deliberately bypass it.
func Authorize(identity *Identity, ownerID int) error {
	if identity == nil || identity.UserID != ownerID {
		return ErrForbidden
	}

	return nil
}
