package domain

// CanAccess is the ownership rule applied to every equipment read and write.
// Admins bypass it; everyone else must be the recorded owner, so unassigned
// equipment is admin-only.
func (i Identity) CanAccess(ownerID string) bool {
	if i.IsAdmin() {
		return true
	}
	return ownerID != "" && ownerID == i.ID
}
