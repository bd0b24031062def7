package writer

import (
	"github.com/insightdelivered/assembly-converter/internal/models"
)

func intp(n int) *int { return &n }

func sampleAssembly() *models.Assembly {
	return &models.Assembly{
		Page:   "11th_Meghalaya_Assembly",
		Source: models.SourceAPI,
		Records: []models.ConstituencyRecord{
			{
				RawRow:         models.RawRow{Sequence: "1", Constituency: "Nartiang", Name: "Sniawbhalang Dhar", Party: "NPP", Alliance: "MDA"},
				District:       "West Jaintia Hills district",
				ConstituencyNo: intp(1),
			},
			{
				RawRow:         models.RawRow{Sequence: "—", Constituency: "Mawhati", Name: "Vacant", Party: "Vacant", Alliance: "", Remarks: "Seat vacated"},
				District:       "Ri Bhoi district",
				ConstituencyNo: nil,
			},
		},
		Districts: []string{"West Jaintia Hills district", "Ri Bhoi district"},
		Parties:   []string{"NPP", "Vacant"},
	}
}
