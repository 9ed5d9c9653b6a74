package models

// TVBrands lists the brands the shop services. The assistant is steered
// toward these names but free-text values are accepted on tickets.
var TVBrands = []string{
	"Sony", "Samsung", "LG", "Walton", "Singer", "Vision", "Minister",
	"MyOne", "Jamuna", "Haier", "Hisense", "TCL", "Panasonic", "Xiaomi",
	"Videocon", "General", "Sharp", "Toshiba", "Philips", "Hitachi",
	"Rangs", "Konka", "Nova", "Other",
}

// IssueTypes lists the primary issue categories for a repair ticket.
var IssueTypes = []string{
	"Display Issue", "Power Issue", "Sound Issue", "Connectivity Issue",
	"Physical Damage", "Software Issue", "Remote Issue", "Other",
}
