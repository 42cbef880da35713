package notary

// Count is the number of notary slots. Sender indices are valid in [0, Count).
const Count = 64

// Roster maps a notary index to its display name.
type Roster [Count]string

// DefaultRoster is the current season of first-party notaries.
var DefaultRoster = Roster{
	"blackice_DEV",
	"blackice_AR",
	"blackice_EU",
	"blackice_NA",
	"alien_NA",
	"alien_EU",
	"alien_SH",
	"alienx_NA",
	"alright_EU",
	"alright_DEV",
	"artem.pikulin_AR",
	"batman_AR",
	"blackice2_AR",
	"ca333_EU",
	"caglarkaya_EU",
	"chmex_AR",
	"chmex_EU",
	"chmex_NA",
	"chmex_SH",
	"chmex2_SH",
	"cipi_AR",
	"cipi_EU",
	"cipi_NA",
	"colmapol_EU",
	"computergenie_EU",
	"computergenie_NA",
	"computergenie2_NA",
	"dimxy_AR",
	"dimxy_DEV",
	"emmaccen_DEV",
	"fediakash_AR",
	"gcharang_AR",
	"gcharang_SH",
	"gcharang_DEV",
	"kmdude_SH",
	"marmara_AR",
	"marmara_EU",
	"mcrypt_SH",
	"nodeone_NA",
	"nodeone2_NA",
	"ozkanonur_NA",
	"pbca26_NA",
	"pbca26_SH",
	"phit_SH",
	"ptyx_SH",
	"shamardy_SH",
	"sheeba_SH",
	"sheeba2_SH",
	"smdmitry_AR",
	"smdmitry_EU",
	"smdmitry_SH",
	"smdmitry2_AR",
	"strob_SH",
	"tonyl_AR",
	"tonyl_DEV",
	"van_EU",
	"webworker01_EU",
	"webworker01_NA",
	"who-biz_NA",
	"yurri-khi_DEV",
	"dragonhound_AR",
	"dragonhound_EU",
	"dragonhound_NA",
	"dragonhound_DEV",
}

// Name returns the display name of a notary, or "" for an invalid index.
func (r *Roster) Name(id int) string {
	if id < 0 || id >= Count {
		return ""
	}
	return r[id]
}
