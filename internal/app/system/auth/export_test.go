package auth

import "net/http"

// SaveUser writes u into a session cookie, the way the accounts service
// does at login.
func (sm *SessionManager) SaveUser(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[loginKey] = u.LoginID
	sess.Values[userRole] = u.Role
	return sess.Save(r, w)
}
