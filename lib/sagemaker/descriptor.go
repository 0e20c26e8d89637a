package sagemaker

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	EnvModelID           = "HF_MODEL_ID"
	EnvTask              = "HF_TASK"
	EnvMaxLength         = "MAX_LENGTH"
	EnvTemperature       = "TEMPERATURE"
	EnvDoSample          = "DO_SAMPLE"
	EnvTopP              = "TOP_P"
	EnvRepetitionPenalty = "REPETITION_PENALTY"
	EnvSystemPrompt      = "SYSTEM_PROMPT"
)

// GenerationEnv holds the generation-time parameters baked into the
// container environment. Unset values are left out of the environment.
type GenerationEnv struct {
	MaxLength         mo.Option[int]
	Temperature       mo.Option[float64]
	DoSample          mo.Option[bool]
	TopP              mo.Option[float64]
	RepetitionPenalty mo.Option[float64]
}

type DescriptorSpec struct {
	ModelID      string
	Task         string
	Versions     FrameworkVersions
	Generation   GenerationEnv
	SystemPrompt mo.Option[string]
	// Extra is copied verbatim into the environment after the generation
	// parameters.
	Extra     map[string]string
	ModelData mo.Option[string]
}

// BuildDescriptor assembles the descriptor. No range validation happens here,
// malformed values are rejected by SageMaker at deploy time.
func BuildDescriptor(spec DescriptorSpec) ModelDescriptor {
	env := map[string]string{
		EnvModelID: spec.ModelID,
		EnvTask:    spec.Task,
	}
	g := spec.Generation
	if v, ok := g.MaxLength.Get(); ok {
		env[EnvMaxLength] = strconv.Itoa(v)
	}
	if v, ok := g.Temperature.Get(); ok {
		env[EnvTemperature] = formatFloat(v)
	}
	if v, ok := g.TopP.Get(); ok {
		env[EnvTopP] = formatFloat(v)
	}
	if v, ok := g.DoSample.Get(); ok {
		env[EnvDoSample] = strconv.FormatBool(v)
	}
	if v, ok := g.RepetitionPenalty.Get(); ok {
		env[EnvRepetitionPenalty] = formatFloat(v)
	}
	if v, ok := spec.SystemPrompt.Get(); ok {
		env[EnvSystemPrompt] = v
	}
	for k, v := range spec.Extra {
		env[k] = v
	}
	return ModelDescriptor{
		ModelID:   spec.ModelID,
		Task:      spec.Task,
		Versions:  spec.Versions,
		Env:       env,
		ModelData: spec.ModelData.OrEmpty(),
	}
}

// SortedEnvKeys returns the environment keys in a stable order for printing.
func (md ModelDescriptor) SortedEnvKeys() []string {
	keys := lo.Keys(md.Env)
	sort.Strings(keys)
	return keys
}

func (md ModelDescriptor) String() string {
	return fmt.Sprintf("%s (%s, transformers %s, pytorch %s, %s)",
		md.ModelID, md.Task, md.Versions.Transformers, md.Versions.PyTorch, md.Versions.Python)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
