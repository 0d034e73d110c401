package constants

import "pcp-golang/internal/storage"

// FixedStages is the full stage set of every work order, in production order.
var FixedStages = []storage.StageName{
	storage.StageCut,
	storage.StageBend,
	storage.StagePaint,
	storage.StageBoilerwork,
	storage.StageAssembly,
	storage.StageStartup,
}

// FabricationStages inherit the project's fabrication phase start date.
var FabricationStages = map[storage.StageName]bool{
	storage.StageCut:        true,
	storage.StageBend:       true,
	storage.StagePaint:      true,
	storage.StageBoilerwork: true,
}

// SpecialistStages maps a specialist account to the stages it may touch.
var SpecialistStages = map[string][]storage.StageName{
	"estrutura@nexon.com":   {storage.StageCut, storage.StageBend, storage.StagePaint},
	"caldeiraria@nexon.com": {storage.StageBoilerwork},
	"montagem@nexon.com":    {storage.StageAssembly},
	"startup@nexon.com":     {storage.StageStartup},
}

func IsFixedStage(name storage.StageName) bool {
	for _, s := range FixedStages {
		if s == name {
			return true
		}
	}
	return false
}
