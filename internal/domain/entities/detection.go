package entities

// Detection is what a target discloses about its stack in response headers
type Detection struct {
	URL           string // final URL after redirects
	StatusCode    int
	ApacheVersion string // "" when not disclosed
	PHPVersion    string // "" when not disclosed
	ServerHeader  string
	PoweredBy     string
}

// PHPRelease is one record of the php.net JSON release index
type PHPRelease struct {
	Version           string
	SupportedVersions []string
}

// PHPBuild is one branch record of the windows.php.net builds index
type PHPBuild struct {
	Version string
}
