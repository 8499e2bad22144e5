package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/model"
)

// 模型工件的 KV key
const (
	ContentArtifactKey = "stayrec:model:content"
	CollabArtifactKey  = "stayrec:model:collab"
)

// Artifacts 把拟合好的模型代以 JSON 快照形式写入 core.Store，
// 进程重启时加载，避免启动即冷训练。
type Artifacts struct {
	Store core.Store
}

func NewArtifacts(store core.Store) *Artifacts {
	return &Artifacts{Store: store}
}

// SaveContent 序列化并写入内容模型快照。
func (a *Artifacts) SaveContent(ctx context.Context, m *model.ContentModel) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return a.Store.Set(ctx, ContentArtifactKey, data)
}

// LoadContent 读取并还原内容模型。快照不存在时返回 core.ErrStoreNotFound。
// 反序列化后重建运行期索引。
func (a *Artifacts) LoadContent(ctx context.Context) (*model.ContentModel, error) {
	data, err := a.Store.Get(ctx, ContentArtifactKey)
	if err != nil {
		return nil, err
	}
	var m model.ContentModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.BuildIndex()
	return &m, nil
}

// SaveCollab 序列化并写入协同过滤模型快照。
func (a *Artifacts) SaveCollab(ctx context.Context, m *model.CollabModel) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return a.Store.Set(ctx, CollabArtifactKey, data)
}

// LoadCollab 读取并还原协同过滤模型。快照不存在时返回 core.ErrStoreNotFound。
func (a *Artifacts) LoadCollab(ctx context.Context) (*model.CollabModel, error) {
	data, err := a.Store.Get(ctx, CollabArtifactKey)
	if err != nil {
		return nil, err
	}
	var m model.CollabModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.BuildIndex()
	return &m, nil
}
