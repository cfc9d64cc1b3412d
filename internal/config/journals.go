package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"journal-radar/internal/domain/entity"
)

// DefaultJournals returns the built-in tracked journal list: general
// science flagships plus the plant and crop science journals the digest
// was built for. PubMed feeds are used where the publisher feed omits
// abstracts.
func DefaultJournals() []entity.Journal {
	return []entity.Journal{
		{Name: "Nature", ID: "nature", FeedURL: "https://www.nature.com/nature.rss"},
		{Name: "Science", ID: "science", FeedURL: "https://www.science.org/action/showFeed?type=etoc&feed=rss&jc=science"},
		{Name: "Cell", ID: "cell", FeedURL: "https://www.cell.com/cell/current.rss"},

		{Name: "Nature Genetics", ID: "nature_genetics", FeedURL: "https://www.nature.com/ng.rss"},
		{Name: "Nature Plants", ID: "nature_plants", FeedURL: "https://www.nature.com/nplants.rss"},
		{Name: "Nature Communications", ID: "nature_communications", FeedURL: "https://www.nature.com/ncomms.rss"},
		{Name: "Nature Biotechnology", ID: "nature_biotechnology", FeedURL: "https://www.nature.com/nbt.rss"},
		{Name: "Nature Ecology & Evolution", ID: "nature_ecol_evol", FeedURL: "https://www.nature.com/natecolevol.rss"},

		{Name: "Science Advances", ID: "science_advances", FeedURL: "https://www.science.org/action/showFeed?feed=rss&jc=sciadv&type=etoc"},

		{Name: "The Plant Journal (PubMed)", ID: "plant_journal_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/9207397/?limit=50&name=Plant%20J&utm_campaign=journals"},
		{Name: "Journal of Integrative Plant Biology (PubMed)", ID: "jipb_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/101250502/?limit=50&name=J%20Integr%20Plant%20Biol&utm_campaign=journals"},
		{Name: "Plant Biotechnology Journal (PubMed)", ID: "pbj_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/101201889/?limit=50&name=Plant%20Biotechnol%20J&utm_campaign=journals"},
		{Name: "The Plant Cell (PubMed)", ID: "plant_cell_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/9208688/?limit=50&name=Plant%20Cell&utm_campaign=journals"},
		{Name: "Plant Physiology (PubMed)", ID: "plant_physiology_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/0401224/?limit=50&name=Plant%20Physiol&utm_campaign=journals"},
		{Name: "New Phytologist (PubMed)", ID: "new_phytologist_pubmed", FeedURL: "https://pubmed.ncbi.nlm.nih.gov/rss/journals/9882884/?limit=50&name=New%20Phytol&utm_campaign=journals"},

		{Name: "Plant Communications", ID: "plant_communications", FeedURL: "http://www.cell.com/plant-communications/current.rss"},
		{Name: "Molecular Plant", ID: "molecular_plant", FeedURL: "http://www.cell.com/molecular-plant/current.rss"},

		{Name: "PNAS", ID: "pnas", FeedURL: "https://www.pnas.org/action/showFeed?type=etoc&feed=rss&jc=pnas"},

		{Name: "The Crop Journal", ID: "crop_journal", FeedURL: "https://rss.sciencedirect.com/publication/science/22145141"},
	}
}

// LoadJournals returns the journal list to process. When JOURNALS_FILE is
// set, the YAML file it points at replaces the built-in list entirely; a
// missing or invalid file is an error rather than a silent fallback, since
// running against the wrong journal set wastes a whole scheduled digest.
func LoadJournals() ([]entity.Journal, error) {
	path := os.Getenv("JOURNALS_FILE")
	if path == "" {
		return DefaultJournals(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read journals file %s: %w", path, err)
	}

	var journals []entity.Journal
	if err := yaml.Unmarshal(data, &journals); err != nil {
		return nil, fmt.Errorf("parse journals file %s: %w", path, err)
	}
	if len(journals) == 0 {
		return nil, fmt.Errorf("journals file %s contains no journals", path)
	}

	for i := range journals {
		if err := journals[i].Validate(); err != nil {
			return nil, fmt.Errorf("journals file %s entry %d: %w", path, i, err)
		}
	}
	return journals, nil
}
