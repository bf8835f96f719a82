package seasonal

import "github.com/justingrant1/mybeekeep/internal/core/calendar"

// Season names the four template anchors of a beekeeping year.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// seasonsInOrder fixes the generation order so output is deterministic.
var seasonsInOrder = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// Zone is a coarse climate classification used to select activity tables.
type Zone string

const (
	ZoneNortheast Zone = "northeast"
	ZoneSoutheast Zone = "southeast"
	ZoneMidwest   Zone = "midwest"
	ZoneSouthwest Zone = "southwest"
	ZonePacific   Zone = "pacific"
)

// DefaultZone is the fallback table for unknown climate zones. The fallback
// is deliberate: a bad zone string degrades to generic temperate-climate
// recommendations instead of an empty calendar.
const DefaultZone = ZoneNortheast

// Activity is one recommended task within a season's table.
type Activity struct {
	Title       string
	Description string
	Type        calendar.EventType
	Priority    calendar.Priority
}

var zoneTemplates = map[Zone]map[Season][]Activity{
	ZoneNortheast: {
		SeasonSpring: {
			{Title: "First full hive inspection", Description: "Check brood pattern, stores, and queen presence once daytime temps hold above 55F.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Varroa mite count", Description: "Alcohol wash or sugar roll on two frames of brood-nest bees.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Add honey supers", Description: "Super ahead of the dandelion and black locust flow.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Swarm prevention check", Description: "Look for backfilled brood nest and charged queen cups; split if crowded.", Type: calendar.TypeSwarmPrevention, Priority: calendar.PriorityHigh},
		},
		SeasonSummer: {
			{Title: "Harvest spring honey", Description: "Pull capped supers before the summer dearth.", Type: calendar.TypeHarvest, Priority: calendar.PriorityHigh},
			{Title: "Mid-season queen check", Description: "Confirm laying pattern; requeen failing colonies while drones fly.", Type: calendar.TypeQueenCheck, Priority: calendar.PriorityMedium},
			{Title: "Watch for robbing", Description: "Reduce entrances on weak colonies during dearth.", Type: calendar.TypeInspection, Priority: calendar.PriorityMedium},
		},
		SeasonFall: {
			{Title: "Apply fall mite treatment", Description: "Treat after harvest so winter bees emerge clean.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Begin fall feeding", Description: "Feed 2:1 syrup until colonies reach target winter weight.", Type: calendar.TypeFeeding, Priority: calendar.PriorityHigh},
			{Title: "Combine weak colonies", Description: "Newspaper-combine anything under four frames of bees.", Type: calendar.TypeInspection, Priority: calendar.PriorityMedium},
			{Title: "Install mouse guards", Description: "Guards on before the first hard frost.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
		},
		SeasonWinter: {
			{Title: "Heft hives for stores", Description: "Tilt-check weight; add emergency sugar if light.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Clear entrances after snow", Description: "Keep upper and lower entrances open for ventilation.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Repair stored equipment", Description: "Scrape, repair, and repaint boxes and frames.", Type: calendar.TypeEquipment, Priority: calendar.PriorityLow},
			{Title: "Order packages and queens", Description: "Spring suppliers sell out by late winter.", Type: calendar.TypeOther, Priority: calendar.PriorityMedium},
		},
	},
	ZoneSoutheast: {
		SeasonSpring: {
			{Title: "Early season inspection", Description: "Colonies build up fast; inspect before the February-March flow.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Small hive beetle check", Description: "Inspect traps and soil around stands as temperatures rise.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Swarm control splits", Description: "Split boom colonies before they swarm.", Type: calendar.TypeSwarmPrevention, Priority: calendar.PriorityHigh},
			{Title: "Super for the main flow", Description: "Tupelo and gallberry come early; stay ahead with supers.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
		},
		SeasonSummer: {
			{Title: "Harvest early honey", Description: "Pull supers before the summer dearth and beetle pressure peak.", Type: calendar.TypeHarvest, Priority: calendar.PriorityHigh},
			{Title: "Ventilation check", Description: "Screened bottoms and shade reduce bearding in high heat.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Robbing watch", Description: "Dearth robbing starts fast; reduce entrances early.", Type: calendar.TypeInspection, Priority: calendar.PriorityMedium},
		},
		SeasonFall: {
			{Title: "Mite treatment window", Description: "Treat while colonies still rear brood into November.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Light fall feeding", Description: "Mild winters need less weight; avoid overfeeding and swarm-springing.", Type: calendar.TypeFeeding, Priority: calendar.PriorityMedium},
			{Title: "Requeen with local stock", Description: "Fall requeening takes well in long warm autumns.", Type: calendar.TypeQueenCheck, Priority: calendar.PriorityMedium},
		},
		SeasonWinter: {
			{Title: "Brood break check", Description: "Many colonies keep brood all winter; verify stores monthly.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Equipment maintenance", Description: "Short winters leave little downtime; repair early.", Type: calendar.TypeEquipment, Priority: calendar.PriorityLow},
			{Title: "Plan spring splits", Description: "Order queens and nuc boxes before the rush.", Type: calendar.TypeOther, Priority: calendar.PriorityMedium},
		},
	},
	ZoneMidwest: {
		SeasonSpring: {
			{Title: "First inspection after cleansing flights", Description: "Quick check on the first 60F day; do not chill brood.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Reverse brood boxes", Description: "Reverse when the cluster occupies the top box only.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Varroa baseline count", Description: "Early count sets the treatment calendar for the year.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Swarm season patrol", Description: "Weekly queen-cup checks from dandelion bloom onward.", Type: calendar.TypeSwarmPrevention, Priority: calendar.PriorityHigh},
		},
		SeasonSummer: {
			{Title: "Main flow supering", Description: "Clover and basswood flows can fill a super a week.", Type: calendar.TypeEquipment, Priority: calendar.PriorityHigh},
			{Title: "Harvest basswood honey", Description: "Pull capped supers in late July.", Type: calendar.TypeHarvest, Priority: calendar.PriorityHigh},
			{Title: "Queenright check", Description: "Verify every colony is queenright going into August.", Type: calendar.TypeQueenCheck, Priority: calendar.PriorityMedium},
		},
		SeasonFall: {
			{Title: "Aggressive mite knockdown", Description: "Winter survival tracks September mite loads.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Heavy fall feeding", Description: "Target 90+ lb total hive weight before freeze-up.", Type: calendar.TypeFeeding, Priority: calendar.PriorityHigh},
			{Title: "Wind protection", Description: "Wrap hives and stake windbreaks before November.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
		},
		SeasonWinter: {
			{Title: "Candy board check", Description: "Add emergency feed above the cluster on a calm day.", Type: calendar.TypeFeeding, Priority: calendar.PriorityHigh},
			{Title: "Ventilation and moisture check", Description: "Condensation kills more colonies than cold.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Assemble spring equipment", Description: "Build frames and boxes during the long freeze.", Type: calendar.TypeEquipment, Priority: calendar.PriorityLow},
		},
	},
	ZoneSouthwest: {
		SeasonSpring: {
			{Title: "Desert bloom inspection", Description: "Build-up follows the wildflower bloom; inspect early.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Water source check", Description: "Reliable water within 100 yards before the heat arrives.", Type: calendar.TypeEquipment, Priority: calendar.PriorityHigh},
			{Title: "Africanized colony assessment", Description: "Evaluate temperament; requeen hot colonies promptly.", Type: calendar.TypeQueenCheck, Priority: calendar.PriorityHigh},
		},
		SeasonSummer: {
			{Title: "Mesquite harvest", Description: "Pull mesquite honey before monsoon humidity.", Type: calendar.TypeHarvest, Priority: calendar.PriorityHigh},
			{Title: "Shade and ventilation", Description: "Full afternoon sun can melt comb; shade cloth helps.", Type: calendar.TypeEquipment, Priority: calendar.PriorityHigh},
			{Title: "Dearth feeding check", Description: "Feed light syrup through the hottest weeks if scales drop.", Type: calendar.TypeFeeding, Priority: calendar.PriorityMedium},
		},
		SeasonFall: {
			{Title: "Second wildflower flow", Description: "Monsoon bloom can yield a fall crop; super if heavy.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Mite treatment", Description: "Treat during the mild fall brood reduction.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
		},
		SeasonWinter: {
			{Title: "Light winter inspection", Description: "Clusters stay loose; quick checks are safe on warm days.", Type: calendar.TypeInspection, Priority: calendar.PriorityMedium},
			{Title: "Stores check", Description: "Mild winters burn stores; feed fondant if light.", Type: calendar.TypeFeeding, Priority: calendar.PriorityHigh},
		},
	},
	ZonePacific: {
		SeasonSpring: {
			{Title: "Rain-break inspection", Description: "Use dry windows for quick inspections; colonies build early.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Chalkbrood check", Description: "Damp springs favor chalkbrood; ensure ventilation.", Type: calendar.TypeInspection, Priority: calendar.PriorityMedium},
			{Title: "Swarm trap placement", Description: "Set bait hives before big-leaf maple bloom.", Type: calendar.TypeSwarmPrevention, Priority: calendar.PriorityMedium},
			{Title: "Varroa count", Description: "Baseline wash once drone brood appears.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
		},
		SeasonSummer: {
			{Title: "Blackberry flow supering", Description: "The main flow; add supers ahead of the bees.", Type: calendar.TypeEquipment, Priority: calendar.PriorityHigh},
			{Title: "Harvest blackberry honey", Description: "Pull supers when the flow tapers in late July.", Type: calendar.TypeHarvest, Priority: calendar.PriorityHigh},
			{Title: "Queen performance check", Description: "Requeen drone layers while mating weather holds.", Type: calendar.TypeQueenCheck, Priority: calendar.PriorityMedium},
		},
		SeasonFall: {
			{Title: "Mite treatment", Description: "Treat early; fall brood rearing runs long in mild weather.", Type: calendar.TypeTreatment, Priority: calendar.PriorityHigh},
			{Title: "Moisture management", Description: "Quilt boxes and tilted stands shed winter rain.", Type: calendar.TypeEquipment, Priority: calendar.PriorityHigh},
			{Title: "Fall feeding", Description: "Top off light hives before the rains settle in.", Type: calendar.TypeFeeding, Priority: calendar.PriorityMedium},
		},
		SeasonWinter: {
			{Title: "Rain-gear stores check", Description: "Heft on dry days; wet clusters eat more than expected.", Type: calendar.TypeInspection, Priority: calendar.PriorityHigh},
			{Title: "Entrance mold check", Description: "Clear dead bees and mold from damp entrances.", Type: calendar.TypeEquipment, Priority: calendar.PriorityMedium},
			{Title: "Plan spring expansion", Description: "Order equipment and queens for the early buildup.", Type: calendar.TypeOther, Priority: calendar.PriorityLow},
		},
	},
}

// Templates returns the activity table for a zone, falling back to
// DefaultZone when the zone is unknown.
func Templates(zone Zone) map[Season][]Activity {
	if t, ok := zoneTemplates[zone]; ok {
		return t
	}
	return zoneTemplates[DefaultZone]
}

// KnownZone reports whether the zone has its own table.
func KnownZone(zone Zone) bool {
	_, ok := zoneTemplates[zone]
	return ok
}
