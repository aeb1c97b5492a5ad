package records

// Kind describes how a field is edited and how its form value is decoded.
type Kind int

const (
	KindText   Kind = iota // free text
	KindNumber             // numeric input, decoded to a number when it parses
	KindFlag               // "True"/"False" select
	KindList               // comma-joined on the wire, a string slice in forms
	KindChoice             // select over Field.Options
)

// String returns the kind name used by form templates.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFlag:
		return "flag"
	case KindList:
		return "list"
	case KindChoice:
		return "choice"
	default:
		return "text"
	}
}

// Group identifies one of the three record groups a client is stored as.
type Group string

const (
	GroupDetails      Group = "details"
	GroupApp          Group = "app"
	GroupNotification Group = "notif"
)

// Field is one editable column of a client.
type Field struct {
	Key     string
	Label   string
	Group   Group
	Kind    Kind
	Default any
	Options []string
}

// FlagOptions are the values of a KindFlag field.
var FlagOptions = []string{"True", "False"}

// catalog lists every editable client field in form order. Defaults are
// used whenever the backend's defaults endpoint leaves a field out.
var catalog = []Field{
	// client_details
	{Key: "clientName", Label: "Client Name", Group: GroupDetails, Default: ""},
	{Key: "dbName", Label: "DB Name", Group: GroupDetails, Default: ""},
	{Key: "baseClient", Label: "Base Client", Group: GroupDetails, Default: ""},
	{Key: "medianFlag", Label: "Median Flag", Group: GroupDetails, Kind: KindNumber, Default: 0},
	{Key: "stateMaintainHours", Label: "State Maintain Hours", Group: GroupDetails, Kind: KindNumber, Default: 24},
	{Key: "recentAlertHours", Label: "Recent Alert Hours", Group: GroupDetails, Kind: KindNumber, Default: 6},
	{Key: "notificationListHours", Label: "Notification List Hours", Group: GroupDetails, Kind: KindNumber, Default: 24},
	{Key: "trashEnabled", Label: "Trash Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "paperEnabled", Label: "Paper Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "hvacEnabled", Label: "HVAC Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "waterFlowEnabled", Label: "Water Flow Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "feedbackEnabled", Label: "Feedback Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "soapDispenserEnabled", Label: "Soap Dispenser Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "airFreshenerEnabled", Label: "Air Freshener Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "cleanIndexEnabled", Label: "Clean Index Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "heatMapEnabled", Label: "Heat Map Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "schedulerEnabled", Label: "Scheduler Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "peopleCountEnabled", Label: "People Count Enabled", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "typicalHighValue", Label: "Typical High Value", Group: GroupDetails, Kind: KindNumber, Default: 5},
	{Key: "cleaningThreshold", Label: "Cleaning Threshold", Group: GroupDetails, Kind: KindNumber, Default: 50},
	{Key: "analyticsWeekEndRestrictionFlag", Label: "Analytics Weekend Flag", Group: GroupDetails, Kind: KindFlag, Default: "True"},
	{Key: "trafficSensor", Label: "Traffic Sensor", Group: GroupDetails, Default: "PeopleCount"},
	{Key: "appViewType", Label: "App View Type", Group: GroupDetails, Kind: KindNumber, Default: 1},
	{Key: "feedbackAlertConfig", Label: "Feedback Alert Config", Group: GroupDetails, Default: "0,1"},
	{Key: "beaconTimeInterval", Label: "Beacon Time Interval", Group: GroupDetails, Kind: KindNumber, Default: 2},
	{Key: "soapShots", Label: "Soap Shots", Group: GroupDetails, Kind: KindNumber, Default: 1000},
	{Key: "pumpPercentage", Label: "Pump Percentage", Group: GroupDetails, Kind: KindNumber, Default: 75},
	{Key: "soapPredictionIsEnabled", Label: "Soap Prediction Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "labelFlag", Label: "Label Flag", Group: GroupDetails, Default: "3"},
	{Key: "weatherEnabled", Label: "Weather Enabled", Group: GroupDetails, Kind: KindFlag, Default: "False"},
	{Key: "language", Label: "Language", Group: GroupDetails, Default: "English"},
	{Key: "occupancyDurationLimit", Label: "Occupancy Duration Limit", Group: GroupDetails, Kind: KindNumber, Default: 10},
	{Key: "passwordRotationInterval", Label: "Password Rotation Interval", Group: GroupDetails, Kind: KindNumber, Default: 0},
	{Key: "mfaFlag", Label: "MFA Flag", Group: GroupDetails, Kind: KindNumber, Default: 0},
	{Key: "pageReloadInterval", Label: "Page Reload Interval", Group: GroupDetails, Kind: KindNumber, Default: 60},
	{Key: "inspectionType", Label: "Inspection Type", Group: GroupDetails, Kind: KindNumber, Default: 1},
	{Key: "defaultGradingflag", Label: "Default Grading Flag", Group: GroupDetails, Kind: KindNumber, Default: 1},
	{Key: "commentsLimit", Label: "Comments Limit", Group: GroupDetails, Kind: KindNumber, Default: 100},
	{Key: "janitorScheduleFlag", Label: "Janitor Schedule Flag", Group: GroupDetails, Kind: KindNumber, Default: 0},
	{Key: "publisherType", Label: "Publisher Type", Group: GroupDetails, Default: "mqtt"},
	{Key: "availableSensors", Label: "Available Sensors", Group: GroupDetails, Default: ""},
	{Key: "feedbackType", Label: "Feedback Type", Group: GroupDetails, Kind: KindNumber, Default: 2},
	{Key: "feedbackAlertOrder", Label: "Feedback Alert Order", Group: GroupDetails, Kind: KindNumber, Default: 4},
	{Key: "feedbackDefaultTimeout", Label: "Feedback Default Timeout", Group: GroupDetails, Kind: KindNumber, Default: 20},
	{Key: "overViewStartTime", Label: "Overview Start Time", Group: GroupDetails, Default: "12:00 AM"},
	{Key: "cannedChartPeriod", Label: "Canned Chart Period", Group: GroupDetails, Kind: KindNumber, Default: 60},
	{Key: "dataPostingType", Label: "Data Posting Type", Group: GroupDetails, Default: ""},

	// clientappdetails
	{Key: "defaultLanguage", Label: "Default Language", Group: GroupApp, Default: "English"},
	{Key: "listOfLanguage", Label: "List Of Language", Group: GroupApp, Kind: KindList, Default: []string{"English"}},
	{Key: "defaultDisplayLanguage", Label: "Default Display Language", Group: GroupApp, Default: "English"},
	{Key: "listOfDisplayLanguage", Label: "Display Language List", Group: GroupApp, Kind: KindList, Default: []string{"English"}},
	{Key: "headerLogo", Label: "Header Logo", Group: GroupApp, Default: "https://zanelbapp.zancompute.com:82/ClientLogos/ANALYTICSPRD/ISS4.png"},
	{Key: "footerLogo", Label: "Footer Logo", Group: GroupApp, Default: ""},
	{Key: "poweredByLogo", Label: "Powered By Logo", Group: GroupApp, Default: "https://zanelbapp.zancompute.com:82/ClientLogos/ANALYTICSPRD/Kiosk-Powered-by-1.png"},
	{Key: "productLogo", Label: "Product Logo", Group: GroupApp, Default: "https://gcp-image.zancompute.com/ClientLogos/ANALYTICSPRD/Bobrick-BG-Ori.png"},
	{Key: "homeLauncherLogo", Label: "Home Launcher Logo", Group: GroupApp, Default: ""},
	{Key: "menuColor", Label: "Menu Color", Group: GroupApp, Default: "#141b4d"},
	{Key: "subMenuColor", Label: "Sub Menu Color", Group: GroupApp, Default: "272f69"},
	{Key: "textColor", Label: "Text Color", Group: GroupApp, Default: "#3d86ea"},
	{Key: "mobileHeaderColor", Label: "Mobile Header Color", Group: GroupApp, Default: ""},
	{Key: "mobileMenuBgColor", Label: "Mobile Menu BG", Group: GroupApp, Default: ""},
	{Key: "homeBgColor", Label: "Home BG Color", Group: GroupApp, Default: "#f1fdff"},
	{Key: "headerText", Label: "Header Text", Group: GroupApp, Default: "Zanitor"},
	{Key: "welcomeText", Label: "Welcome Text", Group: GroupApp, Default: "Welcome To Zanitor"},
	{Key: "welcomeBody", Label: "Welcome Body", Group: GroupApp, Default: ""},

	// notificationconfiguration
	{Key: "push", Label: "Push", Group: GroupNotification, Kind: KindFlag, Default: "True"},
	{Key: "alert", Label: "Alert Type", Group: GroupNotification, Kind: KindChoice, Default: "", Options: []string{"Push", "Get", "Email"}},
	{Key: "timeRestriction", Label: "Time Restriction", Group: GroupNotification, Default: "11:59 PM-12:01 AM"},
	{Key: "weekendRestriction", Label: "Weekend Restriction", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "alertInterval", Label: "Alert Interval", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "janitorIssueInterval", Label: "Janitor Issue Interval", Group: GroupNotification, Default: "0,1"},
	{Key: "maintenanceIssueInterval", Label: "Maintenance Issue Interval", Group: GroupNotification, Default: "0,1"},
	{Key: "feedbackDuplicateFilterInterval", Label: "Feedback Duplicate Filter", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "feedbackFilterCount", Label: "Feedback Filter Count", Group: GroupNotification, Kind: KindNumber, Default: 4},
	{Key: "deviceEmailFlag", Label: "Device Email Flag", Group: GroupNotification, Default: "0,0"},
	{Key: "feedbackCombinedFlag", Label: "Feedback Combined Flag", Group: GroupNotification, Kind: KindFlag, Default: "True"},
	{Key: "feedbackEmailFlag", Label: "Feedback Email Flag", Group: GroupNotification, Default: "0,0"},
	{Key: "feedbackTextFlag", Label: "Feedback Text Flag", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "deviceTextFlag", Label: "Device Text Flag", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "qrJanitorpush", Label: "QR Janitor Push", Group: GroupNotification, Kind: KindFlag, Default: "True"},
	{Key: "qrJanitorTextFlag", Label: "QR Janitor Text Flag", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "qrJanitorEmailFlag", Label: "QR Janitor Email Flag", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "openAreaTrafficFlag", Label: "Open Area Traffic Flag", Group: GroupNotification, Kind: KindNumber, Default: 3},
	{Key: "escalationType", Label: "Escalation Type", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "escalationLevel1Interval", Label: "Escalation L1", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "escalationLevel2Interval", Label: "Escalation L2", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "notCleanEscalationInterval", Label: "Not Clean Escalation", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "cleaningScheduleFlag", Label: "Cleaning Schedule Flag", Group: GroupNotification, Kind: KindFlag, Default: "False"},
	{Key: "dispatchedInterval", Label: "Dispatched Interval", Group: GroupNotification, Kind: KindNumber, Default: 0},
	{Key: "deviceDataTimeInterval", Label: "Device Data Time Interval", Group: GroupNotification, Default: "45"},
	{Key: "toiletPaperThreshold", Label: "Toilet Paper Threshold", Group: GroupNotification, Default: "15"},
	{Key: "paperTowelThreshold", Label: "Paper Towel Threshold", Group: GroupNotification, Default: "15"},
	{Key: "trashThreshold", Label: "Trash Threshold", Group: GroupNotification, Default: "75"},
	{Key: "areaAlertThreshold", Label: "Area Alert Threshold", Group: GroupNotification, Default: "0"},
	{Key: "trafficAlert", Label: "Traffic Alert", Group: GroupNotification, Kind: KindFlag, Default: "True"},
}

var catalogIndex = func() map[string]Field {
	idx := make(map[string]Field, len(catalog))
	for _, f := range catalog {
		idx[f.Key] = f
	}
	return idx
}()

// Fields returns the editable fields of a group in form order.
func Fields(g Group) []Field {
	var out []Field
	for _, f := range catalog {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// FormGroup is one tab of the client form.
type FormGroup struct {
	Group  Group
	Title  string
	Fields []Field
}

// FormGroups returns the client form tabs in display order.
func FormGroups() []FormGroup {
	return []FormGroup{
		{Group: GroupDetails, Title: "Client Details", Fields: Fields(GroupDetails)},
		{Group: GroupApp, Title: "App Details", Fields: Fields(GroupApp)},
		{Group: GroupNotification, Title: "Notification Config", Fields: Fields(GroupNotification)},
	}
}

// AllFields returns every editable field in form order.
func AllFields() []Field {
	return append([]Field(nil), catalog...)
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Field, bool) {
	f, ok := catalogIndex[key]
	return f, ok
}

// Label returns the display label for key, falling back to the key itself.
func Label(key string) string {
	switch key {
	case "id":
		return "ID"
	case "updatedTime":
		return "Updated Time"
	}
	if f, ok := catalogIndex[key]; ok {
		return f.Label
	}
	return key
}

// FallbackDefaults returns a new record holding the built-in default of every field.
func FallbackDefaults() Record {
	rec := make(Record, len(catalog))
	for _, f := range catalog {
		if list, ok := f.Default.([]string); ok {
			rec[f.Key] = append([]string(nil), list...)
			continue
		}
		rec[f.Key] = f.Default
	}
	return rec
}
