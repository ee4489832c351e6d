package models

// Snapshot is the whole user data set in the browser export layout:
// one document with the four storage keys at the top level.
type Snapshot struct {
	Packages []Package      `json:"medicationPackages"`
	Courses  []Course       `json:"medicationCourses"`
	Intakes  []IntakeRecord `json:"medicationIntakes"`
	Settings *Settings      `json:"userSettings,omitempty"`
}
