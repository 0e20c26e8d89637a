package sagemaker

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	PresetBlenderbot = "blenderbot"
	PresetDialoGPT   = "dialogpt"
)

const TravelSystemPrompt = "You are an expert AI travel assistant. Help users plan trips, provide travel advice, and answer travel-related questions with enthusiasm and detailed information."

var presets = map[string]DescriptorSpec{
	PresetBlenderbot: {
		ModelID: "facebook/blenderbot-400M-distill",
		Task:    "conversational",
		Versions: FrameworkVersions{
			Transformers: "4.26.0",
			PyTorch:      "1.13.1",
			Python:       "py39",
		},
		Generation: GenerationEnv{
			MaxLength:   mo.Some(512),
			Temperature: mo.Some(0.7),
		},
	},
	PresetDialoGPT: {
		ModelID: "microsoft/DialoGPT-large",
		Task:    "text-generation",
		Versions: FrameworkVersions{
			Transformers: "4.28",
			PyTorch:      "2.0",
			Python:       "py310",
		},
		Generation: GenerationEnv{
			MaxLength:         mo.Some(1000),
			Temperature:       mo.Some(0.7),
			TopP:              mo.Some(0.9),
			DoSample:          mo.Some(true),
			RepetitionPenalty: mo.Some(1.1),
		},
		SystemPrompt: mo.Some(TravelSystemPrompt),
		Extra: map[string]string{
			"TRAVEL_CONTEXT": "true",
		},
	},
}

// Preset returns a copy of the named descriptor spec.
func Preset(name string) (DescriptorSpec, error) {
	spec, ok := presets[name]
	if !ok {
		return DescriptorSpec{}, fmt.Errorf("unknown model preset '%s', expected one of %v", name, PresetNames())
	}
	spec.Extra = lo.Assign(spec.Extra)
	return spec, nil
}

func PresetNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// TravelTags are attached to the DialoGPT travel deployment.
var TravelTags = []Tag{
	{Key: "Project", Value: "TravelCompanion"},
	{Key: "Environment", Value: "Production"},
	{Key: "Model", Value: "DialoGPT-Travel"},
}

var hourlyCosts = map[string]string{
	"ml.t2.medium":   "0.065",
	"ml.t2.large":    "0.130",
	"ml.m5.large":    "0.134",
	"ml.g4dn.xlarge": "0.736",
}

// EstimatedHourlyCost returns the approximate on-demand USD price per hour, or
// "unknown" for instance types outside the table.
func EstimatedHourlyCost(instanceType string) string {
	if c, ok := hourlyCosts[instanceType]; ok {
		return c
	}
	return "unknown"
}
