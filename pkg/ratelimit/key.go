package ratelimit

// Rate limit keys are scoped per logical operation group and governed
// independently per identity class: IP-level limits are looser (abuse
// protection for unauthenticated traffic), user-level limits are stricter.

// IPKey builds the counter key for an IP within a scope:
// "rl:<scope>:ip:<ip>".
func IPKey(scope, ip string) string {
	return "rl:" + scope + ":ip:" + ip
}

// UserKey builds the counter key for a user within a scope:
// "rl:<scope>:user:<userID>".
func UserKey(scope, userID string) string {
	return "rl:" + scope + ":user:" + userID
}
