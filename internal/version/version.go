package version

// Name is the program name printed by --version.
const Name = "disks"

// Version is the current version of disks.
// Use semantic versioning: MAJOR.MINOR.PATCH
const Version = "0.1.0"
