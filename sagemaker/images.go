package sagemaker

import (
	"fmt"
	"strings"

	lib "travelassist/lib/sagemaker"
)

// Registry accounts hosting the Hugging Face deep learning containers.
var registryAccounts = map[string]string{
	"af-south-1":     "626614931356",
	"ap-east-1":      "871362719292",
	"ap-northeast-1": "763104351884",
	"ap-northeast-2": "763104351884",
	"ap-northeast-3": "364406365360",
	"ap-south-1":     "763104351884",
	"ap-southeast-1": "763104351884",
	"ap-southeast-2": "763104351884",
	"ap-southeast-3": "907027046896",
	"ca-central-1":   "763104351884",
	"cn-north-1":     "727897471807",
	"cn-northwest-1": "727897471807",
	"eu-central-1":   "763104351884",
	"eu-north-1":     "763104351884",
	"eu-south-1":     "692866216735",
	"eu-west-1":      "763104351884",
	"eu-west-2":      "763104351884",
	"eu-west-3":      "763104351884",
	"me-south-1":     "217643126080",
	"sa-east-1":      "763104351884",
	"us-east-1":      "763104351884",
	"us-east-2":      "763104351884",
	"us-west-1":      "763104351884",
	"us-west-2":      "763104351884",
}

type imageTag struct {
	transformers string
	pytorch      string
	os           string
}

// Short version pins are expanded to the full versions the published
// containers are tagged with, keyed by transformers/pytorch/python.
var imageTags = map[string]imageTag{
	"4.26/1.13/py39":     {"4.26.0", "1.13.1", "ubuntu20.04"},
	"4.26.0/1.13.1/py39": {"4.26.0", "1.13.1", "ubuntu20.04"},
	"4.28/2.0/py310":     {"4.28.1", "2.0.0", "ubuntu20.04"},
	"4.28.1/2.0.0/py310": {"4.28.1", "2.0.0", "ubuntu20.04"},
	"4.37/2.1/py310":     {"4.37.0", "2.1.0", "ubuntu22.04"},
	"4.37.0/2.1.0/py310": {"4.37.0", "2.1.0", "ubuntu22.04"},
	"4.17/1.10/py38":     {"4.17.0", "1.10.2", "ubuntu20.04"},
	"4.17.0/1.10.2/py38": {"4.17.0", "1.10.2", "ubuntu20.04"},
	"4.12/1.9/py38":      {"4.12.3", "1.9.1", "ubuntu20.04"},
	"4.12.3/1.9.1/py38":  {"4.12.3", "1.9.1", "ubuntu20.04"},
}

// getImage resolves the Hugging Face PyTorch inference container for the
// region. GPU images are picked for accelerated instance families; serverless
// endpoints always run on CPU. Inferentia and Trainium instances need a
// Neuron-compiled model and image, which are not built here.
func getImage(versions lib.FrameworkVersions, region string, hosting lib.HostingConfig) (string, error) {
	if ih, ok := hosting.(lib.InstanceHosting); ok && isNeuronInstance(ih.InstanceType) {
		return "", fmt.Errorf("instance type '%s' requires a Neuron-compiled model, use a CPU (ml.t2, ml.m5, ml.c5) or GPU (ml.g4dn, ml.g5, ml.p3) instance", ih.InstanceType)
	}
	account, ok := registryAccounts[region]
	if !ok {
		return "", fmt.Errorf("no huggingface inference image registry for region '%s'", region)
	}
	key := fmt.Sprintf("%s/%s/%s", versions.Transformers, versions.PyTorch, versions.Python)
	tag, ok := imageTags[key]
	if !ok {
		return "", fmt.Errorf("no huggingface inference image for transformers %s, pytorch %s, %s",
			versions.Transformers, versions.PyTorch, versions.Python)
	}
	device := "cpu"
	if ih, ok := hosting.(lib.InstanceHosting); ok && isGPUInstance(ih.InstanceType) {
		device = "gpu"
	}
	domain := "amazonaws.com"
	if strings.HasPrefix(region, "cn-") {
		domain = "amazonaws.com.cn"
	}
	return fmt.Sprintf("%s.dkr.ecr.%s.%s/huggingface-pytorch-inference:%s-transformers%s-%s-%s-%s",
		account, region, domain, tag.pytorch, tag.transformers, device, versions.Python, tag.os), nil
}

func isGPUInstance(instanceType string) bool {
	for _, family := range []string{"ml.g", "ml.p"} {
		if strings.HasPrefix(instanceType, family) {
			return true
		}
	}
	return false
}

func isNeuronInstance(instanceType string) bool {
	return strings.HasPrefix(instanceType, "ml.inf") || strings.HasPrefix(instanceType, "ml.trn")
}
