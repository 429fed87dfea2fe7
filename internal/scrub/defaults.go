package scrub

// Rule identifiers of the built-in profile.
const (
	ruleAccountFields    = "account-fields"
	ruleCredentialFields = "credential-fields"
	ruleAPIFields        = "api-fields"
	ruleLocalSourcePaths = "local-source-paths"
	ruleUNCSourcePaths   = "unc-source-paths"
	ruleLoginSourcePaths = "login-source-paths"
)

// sensitiveAddonDataPatterns selects addon_data folders of services that store
// account credentials: debrid providers, torrent and seedbox tooling, cloud
// storage, VPNs, and login-based streaming services.
var sensitiveAddonDataPatterns = []string{
	"userdata/addon_data/*debrid*/settings.xml",
	"userdata/addon_data/*premiumize*/settings.xml",
	"userdata/addon_data/*torbox*/settings.xml",
	"userdata/addon_data/*torrent*/settings.xml",
	"userdata/addon_data/*seedbox*/settings.xml",
	"userdata/addon_data/*drive*/settings.xml",
	"userdata/addon_data/*dropbox*/settings.xml",
	"userdata/addon_data/*vpn*/settings.xml",
	"userdata/addon_data/*netflix*/settings.xml",
	"userdata/addon_data/*hulu*/settings.xml",
	"userdata/addon_data/*amazon*/settings.xml",
	"userdata/addon_data/*disney*/settings.xml",
}

// settingsValueRules blank the value attribute of settings whose id names a
// commonly sensitive field, keeping the setting element itself intact.
var settingsValueRules = []Rule{
	{
		ID:          ruleAccountFields,
		Pattern:     `(<setting id="[^"]*(?:username|user|login|email)"[^>]*value=")[^"]+(")`,
		Replacement: `${1}${2}`,
	},
	{
		ID:          ruleCredentialFields,
		Pattern:     `(<setting id="[^"]*(?:password|pass|token|key|secret)"[^>]*value=")[^"]+(")`,
		Replacement: `${1}${2}`,
	},
	{
		ID:          ruleAPIFields,
		Pattern:     `(<setting id="[^"]*(?:api|auth)"[^>]*value=")[^"]+(")`,
		Replacement: `${1}${2}`,
	},
}

// sourcesPathRules blank media source paths that identify the machine or a
// personal account: drive-letter paths, UNC shares, and credentialed URLs.
var sourcesPathRules = []Rule{
	{
		ID:          ruleLocalSourcePaths,
		Pattern:     `<path>[A-Za-z]:[^<]*</path>`,
		Replacement: `<path></path>`,
	},
	{
		ID:          ruleUNCSourcePaths,
		Pattern:     `<path>\\\\[^<]*</path>`,
		Replacement: `<path></path>`,
	},
	{
		ID:          ruleLoginSourcePaths,
		Pattern:     `<path>[^<]*@[^<]*</path>`,
		Replacement: `<path></path>`,
	},
}

// publicBuildExclusions drop personal subtrees and files from public builds
// entirely instead of rewriting them.
var publicBuildExclusions = []string{
	"userdata/Thumbnails/*",
	"userdata/Database/*",
	"userdata/temp/*",
	"userdata/cache/*",
	"userdata/favourites.xml",
}

// DefaultProfile returns the built-in public-build scrubbing profile. It is a
// data table; deployments adjust it through configuration rather than code.
func DefaultProfile() Profile {
	return Profile{
		FileRules: []FileRule{
			{PathPatterns: sensitiveAddonDataPatterns, Rules: settingsValueRules},
			{PathPatterns: []string{"userdata/sources.xml"}, Rules: sourcesPathRules},
		},
		ExtraExclusions: publicBuildExclusions,
	}
}
