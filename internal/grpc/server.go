package grpc

import (
	"context"

	"github.com/rs/zerolog"

	v1 "github.com/Belphemur/StreamResolver/api/resolver/v1"
	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/models"
	"github.com/Belphemur/StreamResolver/internal/services"
)

// server implements the StreamResolverServiceServer interface
type server struct {
	v1.UnimplementedStreamResolverServiceServer
	resolver services.StreamResolver
	logger   zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(r services.StreamResolver) v1.StreamResolverServiceServer {
	return &server{
		resolver: r,
		logger:   config.GetLogger(),
	}
}

// ResolveMovie implements StreamResolverServiceServer.ResolveMovie
func (s *server) ResolveMovie(ctx context.Context, req *v1.ResolveMovieRequest) (*v1.ResolveResponse, error) {
	s.logger.Debug().Str("catalog_id", req.CatalogID).Msg("ResolveMovie called")

	stream, err := s.resolver.ResolveMovie(ctx, req.CatalogID)
	if err != nil {
		return nil, toStatusError(err)
	}
	return convertSelectedStream(stream), nil
}

// ResolveEpisode implements StreamResolverServiceServer.ResolveEpisode
func (s *server) ResolveEpisode(ctx context.Context, req *v1.ResolveEpisodeRequest) (*v1.ResolveResponse, error) {
	s.logger.Debug().Str("catalog_id", req.CatalogID).Msg("ResolveEpisode called")

	stream, err := s.resolver.Resolve(ctx, models.ResolveRequest{
		CatalogID: req.CatalogID,
		Kind:      models.Series,
		Episode:   episodeRef(req.Season, req.Episode),
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return convertSelectedStream(stream), nil
}

// ListStreams implements StreamResolverServiceServer.ListStreams
func (s *server) ListStreams(ctx context.Context, req *v1.ListStreamsRequest) (*v1.ListStreamsResponse, error) {
	s.logger.Debug().Str("catalog_id", req.CatalogID).Str("kind", req.Kind).Msg("ListStreams called")

	kind, ok := models.ParseMediaKind(req.Kind)
	if !ok {
		return nil, toStatusError(apperrors.NewInvalidRequestError("unsupported media kind %q", req.Kind))
	}
	r := models.ResolveRequest{CatalogID: req.CatalogID, Kind: kind}
	if kind == models.Series {
		r.Episode = episodeRef(req.Season, req.Episode)
	}

	variants, err := s.resolver.ListVariants(ctx, r)
	if err != nil {
		return nil, toStatusError(err)
	}

	streams := make([]*v1.Stream, len(variants))
	for i, v := range variants {
		streams[i] = &v1.Stream{
			Path:        v.Path,
			Container:   v.ContainerHint,
			Quality:     v.Quality.String(),
			QualityName: v.QualityName,
		}
	}
	s.logger.Debug().Str("catalog_id", req.CatalogID).Int("count", len(streams)).Msg("ListStreams completed")
	return &v1.ListStreamsResponse{Streams: streams}, nil
}

// episodeRef returns nil unless both season and episode are set.
func episodeRef(season, episode *int32) *models.EpisodeRef {
	if season == nil || episode == nil {
		return nil
	}
	return &models.EpisodeRef{Season: int(*season), Episode: int(*episode)}
}

func convertSelectedStream(stream *models.SelectedStream) *v1.ResolveResponse {
	return &v1.ResolveResponse{
		URL:     stream.URL,
		Title:   stream.Title,
		Year:    stream.Year,
		Quality: stream.Quality.String(),
	}
}
