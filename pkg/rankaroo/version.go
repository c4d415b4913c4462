package rankaroo

// Version is the rankaroo release version.
const Version = "0.1.0"
