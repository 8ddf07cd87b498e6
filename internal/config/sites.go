package config

// DefaultSites is analyzed when no input list is supplied.
var DefaultSites = []string{
	"www.nestle.com",
	"www.drreddys.com",
	"colacompany.com",
	"www.pfizer.com",
	"www.pepsico.com",
	"www.jnj.com",
	"www.danone.com",
	"www.bayer.com",
	"www.generalmills.com",
	"www.gsk.com",
	"www.kelloggs.com",
	"www.merck.com",
	"www.unilever.com",
	"www.roche.com",
	"www.nestlewaters.com",
	"www.sanofi.com",
	"www.mondelezinternational.com",
	"www.novartis.com",
	"www.kraftheinzcompany.com",
	"www.lilly.com",
	"www.tysonfoods.com",
	"www.tevapharm.com",
	"www.mars.com",
	"www.abbvie.com",
	"www.campbellsoupcompany.com",
	"www.amgen.com",
	"www.conagrabrands.com",
	"www.astrazeneca.com",
	"www.molsoncoors.com",
	"www.boehringeringelheim.com",
	"www.abinbev.com",
	"www.basf.com",
	"www.diageo.com",
	"www.pg.com",
	"www.theheinekencompany.com",
	"www.medtronic.com",
	"www.mckesson.com",
	"www.amerisourcebergen.com",
	"www.cardinalhealth.com",
	"www.medline.com",
}
