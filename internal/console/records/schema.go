package records

import "strings"

// Column is one column of a table and of its export.
type Column struct {
	Key     string
	Label   string
	Numeric bool
}

// Schema describes one record table. The same column list drives the HTML
// table and the CSV/XLSX export.
type Schema struct {
	Tab      string
	Title    string
	FileName string
	Columns  []Column
}

// Keys returns the column keys in order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Row renders rec as one string per column.
func (s Schema) Row(rec Record) []string {
	row := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		row[i] = String(rec[c.Key])
	}
	return row
}

// Numeric reports whether field sorts numerically in this table.
func (s Schema) Numeric(field string) bool {
	if field == "id" {
		return true
	}
	for _, c := range s.Columns {
		if c.Key == field {
			return c.Numeric
		}
	}
	return false
}

// Has reports whether field is a column of the table.
func (s Schema) Has(field string) bool {
	for _, c := range s.Columns {
		if c.Key == field {
			return true
		}
	}
	return false
}

func newSchema(tab, title, fileName, keys string) Schema {
	fields := strings.Fields(keys)
	cols := make([]Column, len(fields))
	for i, k := range fields {
		cols[i] = Column{Key: k, Label: Label(k), Numeric: k == "id"}
	}
	return Schema{Tab: tab, Title: title, FileName: fileName, Columns: cols}
}

var (
	// AppSchema is the full client table (core settings plus app details).
	AppSchema = newSchema("app", "Client App Details", "client_app_details", `
		id clientName defaultLanguage listOfLanguage defaultDisplayLanguage
		listOfDisplayLanguage headerLogo poweredByLogo productLogo homeLauncherLogo
		menuColor subMenuColor textColor mobileHeaderColor mobileMenuBgColor
		homeBgColor headerText welcomeText welcomeBody`)

	// DetailsSchema is the client_details table.
	DetailsSchema = newSchema("details", "Client Details", "client_details", `
		id clientName dbName baseClient medianFlag stateMaintainHours recentAlertHours
		notificationListHours trashEnabled paperEnabled hvacEnabled waterFlowEnabled
		feedbackEnabled soapDispenserEnabled airFreshenerEnabled cleanIndexEnabled
		heatMapEnabled schedulerEnabled peopleCountEnabled typicalHighValue
		cleaningThreshold analyticsWeekEndRestrictionFlag trafficSensor appViewType
		feedbackAlertConfig beaconTimeInterval soapShots pumpPercentage
		soapPredictionIsEnabled labelFlag weatherEnabled language
		occupancyDurationLimit passwordRotationInterval mfaFlag pageReloadInterval
		inspectionType defaultGradingflag commentsLimit janitorScheduleFlag
		publisherType availableSensors feedbackType feedbackAlertOrder
		feedbackDefaultTimeout overViewStartTime cannedChartPeriod dataPostingType`)

	// NotificationSchema is the notification configuration table.
	NotificationSchema = newSchema("notif", "Notification Config", "notification_config", `
		id clientName push timeRestriction weekendRestriction alertInterval
		janitorIssueInterval maintenanceIssueInterval feedbackDuplicateFilterInterval
		feedbackFilterCount deviceEmailFlag feedbackCombinedFlag feedbackEmailFlag
		feedbackTextFlag deviceTextFlag qrJanitorpush qrJanitorTextFlag
		qrJanitorEmailFlag openAreaTrafficFlag escalationType
		escalationLevel1Interval escalationLevel2Interval notCleanEscalationInterval
		cleaningScheduleFlag dispatchedInterval deviceDataTimeInterval
		toiletPaperThreshold paperTowelThreshold trashThreshold areaAlertThreshold
		trafficAlert`)
)

// Schemas returns the list tabs in display order.
func Schemas() []Schema {
	return []Schema{AppSchema, DetailsSchema, NotificationSchema}
}

// SchemaFor returns the schema of a tab. Unknown tabs fall back to the app tab.
func SchemaFor(tab string) (Schema, bool) {
	for _, s := range Schemas() {
		if s.Tab == tab {
			return s, true
		}
	}
	return AppSchema, false
}
