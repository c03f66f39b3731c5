package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// moderatorTier is the tier at or below which a caller may delete content
// they do not own.
const moderatorTier = 2

// CommunityService defines the interface for posts, comments and likes
type CommunityService interface {
	ListPosts(ctx context.Context, authorID *int64, page, size int) (*dto.PostListResponse, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id, callerID int64, callerTier int) error
	CreateComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, id, callerID int64, callerTier int) error
	ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeToggleResponse, error)
}

type communityServiceImpl struct {
	postRepo *repositories.PostRepository
	cipher   *fieldcrypto.Cipher
	logger   zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(postRepo *repositories.PostRepository, cipher *fieldcrypto.Cipher, logger zerolog.Logger) CommunityService {
	return &communityServiceImpl{postRepo: postRepo, cipher: cipher, logger: logger}
}

// ListPosts retrieves posts newest first, with author names decrypted
func (s *communityServiceImpl) ListPosts(ctx context.Context, authorID *int64, page, size int) (*dto.PostListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	posts, total, err := s.postRepo.List(ctx, authorID, offset, limit)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		name, err := s.cipher.Decrypt(posts[i].AuthorName)
		if err != nil {
			return nil, err
		}
		posts[i].AuthorName = name
	}

	return &dto.PostListResponse{
		Posts:          posts,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetPost retrieves a post with its comments, author names decrypted
func (s *communityServiceImpl) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.cipher.Decrypt(post.AuthorName)
	if err != nil {
		return nil, err
	}
	post.AuthorName = name

	for i := range post.Comments {
		name, err := s.cipher.Decrypt(post.Comments[i].AuthorName)
		if err != nil {
			return nil, err
		}
		post.Comments[i].AuthorName = name
	}
	return post, nil
}

func (s *communityServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("postID", post.ID).Int64("authorID", authorID).Msg("Post created")
	return post, nil
}

// DeletePost removes a post along with its comments and likes. Allowed for
// the author or a caller at moderator tier.
func (s *communityServiceImpl) DeletePost(ctx context.Context, id, callerID int64, callerTier int) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID && callerTier > moderatorTier {
		return apperrors.NewForbiddenError("본인이 작성한 글만 삭제할 수 있습니다.")
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("postID", id).Int64("callerID", callerID).Msg("Post deleted")
	return nil
}

func (s *communityServiceImpl) CreateComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment; allowed for the author or a caller at
// moderator tier.
func (s *communityServiceImpl) DeleteComment(ctx context.Context, id, callerID int64, callerTier int) error {
	comment, err := s.postRepo.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID && callerTier > moderatorTier {
		return apperrors.NewForbiddenError("본인이 작성한 댓글만 삭제할 수 있습니다.")
	}
	return s.postRepo.DeleteComment(ctx, id)
}

// ToggleLike flips the caller's like on a post and returns the resulting
// state with the fresh count.
func (s *communityServiceImpl) ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeToggleResponse, error) {
	liked, count, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeToggleResponse{
		PostID:    postID,
		Liked:     liked,
		LikeCount: count,
	}, nil
}
