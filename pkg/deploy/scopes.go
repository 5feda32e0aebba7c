package deploy

import "strings"

// JNDI scope prefixes recognized on mail-session names.
const (
	JavaGlobalScopePrefix = "java:global/"
	JavaAppScopePrefix    = "java:app/"
	JavaModuleScopePrefix = "java:module/"
	JavaCompScopePrefix   = "java:comp/"
)

// eligibleForRegistration reports whether a mail-session name falls in a
// scope the deployer publishes. Module- and component-scoped names are
// resolved by their own environments and are skipped here, as are names
// with no scope prefix at all.
func eligibleForRegistration(name string) bool {
	return strings.HasPrefix(name, JavaGlobalScopePrefix) ||
		strings.HasPrefix(name, JavaAppScopePrefix)
}
