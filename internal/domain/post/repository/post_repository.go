package repository

import (
	"encoding/json"
	"strings"
	"sync"

	"post_service/internal/domain/post/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueryFilter 帖子列表查询条件。
// VisibleOwnerIDs 为 nil 时不做可见性过滤（管理端），
// 否则只返回公开帖子和这些作者的私密帖子。
type QueryFilter struct {
	OwnerIDs         []string
	VisibleOwnerIDs  []string
	TaggedUser       string
	Keyword          string
	ReportedOnly     bool
	IncludeDeleted   bool
	IncludeModerated bool
}

type PostRepository interface {
	Create(post *model.Post) error

	// GetByID 按 ID 查询，不过滤任何状态（墓碑、下架帖都能查到）
	GetByID(id string) (*model.Post, error)

	Update(post *model.Post) error
	UpdateFields(id string, fields map[string]interface{}) error

	// Query 分页查询，posts 和 total 并发获取
	Query(filter QueryFilter, offset, limit int) ([]model.Post, int64, error)

	// MutateTx 行锁内读取-修改-写回，用于举报等并发敏感的状态变更。
	// mutate 返回错误时整个事务回滚。
	MutateTx(id string, mutate func(post *model.Post) error) (*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

// applyFilter 把查询条件应用到一个新的查询构造器上。
// 每个 goroutine 必须使用独立的构造器，gorm 的链式构造不是并发安全的。
func (r *postRepository) applyFilter(f QueryFilter) *gorm.DB {
	q := r.db.Model(&model.Post{})

	if !f.IncludeDeleted {
		q = q.Where("deleted = false")
	}
	if !f.IncludeModerated {
		q = q.Where("moderated = false")
	}
	if f.ReportedOnly {
		q = q.Where("is_reported = true")
	}
	if len(f.OwnerIDs) > 0 {
		q = q.Where("owner_id IN ?", f.OwnerIDs)
	}
	if f.VisibleOwnerIDs != nil {
		if len(f.VisibleOwnerIDs) > 0 {
			q = q.Where("visibility = ? OR owner_id IN ?", model.VisibilityPublic, f.VisibleOwnerIDs)
		} else {
			q = q.Where("visibility = ?", model.VisibilityPublic)
		}
	}
	if f.TaggedUser != "" {
		q = q.Where("tagged_users @> ?", jsonArray(f.TaggedUser))
	}
	if f.Keyword != "" {
		// 子串匹配，与原始关键词的大小写无关
		q = q.Where("keywords::text ILIKE ?", "%"+escapeLike(f.Keyword)+"%")
	}

	return q
}

// escapeLike 转义模式通配符，让调用方传入的关键词按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// jsonArray 把单个元素编码为 JSON 数组字面量，供 jsonb @> 使用
func jsonArray(elem string) string {
	b, _ := json.Marshal([]string{elem})
	return string(b)
}

func (r *postRepository) Query(filter QueryFilter, offset, limit int) ([]model.Post, int64, error) {
	var (
		posts    []model.Post
		total    int64
		findErr  error
		countErr error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		findErr = r.applyFilter(filter).
			Order("created_at DESC, id DESC").
			Offset(offset).
			Limit(limit).
			Find(&posts).Error
	}()
	go func() {
		defer wg.Done()
		countErr = r.applyFilter(filter).Count(&total).Error
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, findErr
	}
	if countErr != nil {
		return nil, 0, countErr
	}
	return posts, total, nil
}

func (r *postRepository) MutateTx(id string, mutate func(post *model.Post) error) (*model.Post, error) {
	var post model.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&post).Error; err != nil {
			return err
		}
		if err := mutate(&post); err != nil {
			return err
		}
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
