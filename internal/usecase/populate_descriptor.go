package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// partChunkSize bounds the accessories and heads sent per transaction
const partChunkSize = 10

// PopulateDescriptor loads the art into the descriptor contract
type PopulateDescriptor struct {
	client    ChainClient
	artifacts ArtifactRepository
	images    ImageDataReader
	progress  ProgressSink
}

// NewPopulateDescriptor creates a new populate descriptor use case
func NewPopulateDescriptor(client ChainClient, artifacts ArtifactRepository, images ImageDataReader, progress ProgressSink) *PopulateDescriptor {
	return &PopulateDescriptor{
		client:    client,
		artifacts: artifacts,
		images:    images,
		progress:  progress,
	}
}

// PopulateDescriptorParams contains the descriptor to populate
type PopulateDescriptorParams struct {
	NFTDescriptor   common.Address
	MythsDescriptor common.Address
}

// PopulateDescriptorResult contains the number of transactions sent
type PopulateDescriptorResult struct {
	Transactions int
}

// Run sends backgrounds, palette and every part list to the descriptor.
func (uc *PopulateDescriptor) Run(ctx context.Context, params PopulateDescriptorParams) (*PopulateDescriptorResult, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, MythsDescriptor)
	if err != nil {
		return nil, err
	}
	data, err := uc.images.ReadImageData(ctx)
	if err != nil {
		return nil, err
	}

	calls := descriptorCalls(data)
	for i, call := range calls {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "populate",
			Current: i + 1,
			Total:   len(calls),
			Message: call.method,
		})
		if _, err := uc.client.Transact(ctx, CallRequest{
			Address: params.MythsDescriptor,
			ABI:     &artifact.ABI,
			Method:  call.method,
			Args:    call.args,
		}); err != nil {
			return nil, fmt.Errorf("%s failed: %w", call.method, err)
		}
	}

	uc.progress.Info("Descriptor populated")
	return &PopulateDescriptorResult{Transactions: len(calls)}, nil
}

type descriptorCall struct {
	method string
	args   []any
}

func descriptorCalls(data *models.ImageData) []descriptorCall {
	calls := []descriptorCall{
		{method: "addManyBackgrounds", args: []any{data.BgColors}},
		{method: "addManyColorsToPalette", args: []any{uint8(0), data.Palette}},
		{method: "addManyBodies", args: []any{imageBytes(data.Images.Bodies)}},
	}
	for _, chunk := range lo.Chunk(data.Images.Accessories, partChunkSize) {
		calls = append(calls, descriptorCall{method: "addManyAccessories", args: []any{imageBytes(chunk)}})
	}
	for _, chunk := range lo.Chunk(data.Images.Heads, partChunkSize) {
		calls = append(calls, descriptorCall{method: "addManyHeads", args: []any{imageBytes(chunk)}})
	}
	return append(calls, descriptorCall{method: "addManyGlasses", args: []any{imageBytes(data.Images.Glasses)}})
}

func imageBytes(images []models.EncodedImage) []string {
	return lo.Map(images, func(img models.EncodedImage, _ int) string {
		return img.Data
	})
}
