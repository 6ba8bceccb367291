package permissions

import "github.com/ytgov/digital-marketplace/models"

// ReadOneUser allows a user to read their own record; admins may read anyone.
func ReadOneUser(session *models.Session, userID string) bool {
	return IsAdmin(session) || (IsActive(session) && IsOwnAccount(session, userID))
}

// ReadManyUsers restricts the user list to admins.
func ReadManyUsers(session *models.Session) bool {
	return IsAdmin(session)
}

// UpdateUser allows a user to update their own profile; admins may update anyone.
func UpdateUser(session *models.Session, userID string) bool {
	return IsAdmin(session) || (IsActive(session) && IsOwnAccount(session, userID))
}

// AcceptTerms is strictly personal; not even admins may accept on another
// user's behalf.
func AcceptTerms(session *models.Session, userID string) bool {
	return IsActive(session) && IsOwnAccount(session, userID)
}

// CreateOrganization allows active vendors to register organizations.
func CreateOrganization(session *models.Session) bool {
	return IsVendor(session) || IsAdmin(session)
}

// DeleteOrganization restricts organization removal to admins.
func DeleteOrganization(session *models.Session) bool {
	return IsAdmin(session)
}

// ReadManyOwnedOrganizations allows any active user to list organizations
// they own.
func ReadManyOwnedOrganizations(session *models.Session) bool {
	return IsActive(session)
}
