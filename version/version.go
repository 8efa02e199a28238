package version

// AppVersion is the application's version string. Update on release.
const AppVersion = "0.4.1"
