package constants

// Keys of the export document. They match the layout the browser version kept in localStorage.
const (
	KeyPackages = "medicationPackages"
	KeyCourses  = "medicationCourses"
	KeyIntakes  = "medicationIntakes"
	KeySettings = "userSettings"
)
