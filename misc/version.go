// Package misc keeps program identity values which are set at build time.
package misc

// Overwritten with -ldflags "-X themestyle/misc.version=..." by the build.
var (
	appName = "themestyle"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
