// Package sample filters the full panel to the fixed 50-country analysis sample and
// builds the descriptive tables for it.
package sample

// SelectedCountryNames is the curated 50-country sample, spelled exactly as the raw
// sources spell them.  A name that drifts from the source spelling silently drops that
// country from the sample; the selection logs the retained count so the drift is
// visible.
var SelectedCountryNames = []string{
	// North America
	"United States", "Canada",

	// South Asia
	"India", "Sri Lanka", "Nepal", "Bangladesh", "Maldives", "Bhutan",

	// MENA + Afghanistan & Pakistan
	"Israel", "Iran, Islamic Rep.", "Egypt, Arab Rep.", "Tunisia",
	"Saudi Arabia", "Pakistan", "Algeria",

	// Latin America & Caribbean
	"Brazil", "Colombia", "Mexico", "Costa Rica", "Uruguay", "Chile",
	"Honduras", "Bolivia", "Dominican Republic", "Peru",

	// East Asia & Pacific
	"Japan", "Korea, Rep.", "Australia", "China", "Indonesia",
	"Viet Nam", "Philippines", "Cambodia",

	// Sub-Saharan Africa
	"South Africa", "Mauritius", "Nigeria", "Ghana", "Kenya",
	"Madagascar", "Rwanda", "Burkina Faso",

	// Europe & Central Asia
	"Germany", "France", "United Kingdom", "Poland", "Romania",
	"Hungary", "Georgia", "Kazakhstan", "Uzbekistan",
}
