package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
	"github.com/custodia-labs/edicat/internal/core/ports/driving"
	"github.com/custodia-labs/edicat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService opens inputs, detects their separators and streams segments.
type DocumentService struct {
	opener   driven.SourceOpener
	decoders driven.DecoderFactory
	detector *Detector
	diag     DiagnosticFunc
}

// NewDocumentService creates a new document service.
// decoders may be nil, in which case only lossy UTF-8 is available.
func NewDocumentService(
	opener driven.SourceOpener,
	decoders driven.DecoderFactory,
	diag DiagnosticFunc,
) *DocumentService {
	if diag == nil {
		diag = func(string) {}
	}
	return &DocumentService{
		opener:   opener,
		decoders: decoders,
		detector: NewDetector(diag),
		diag:     diag,
	}
}

// openedDocument is an input positioned at its first byte with a reader ready.
type openedDocument struct {
	reader *SegmentReader
	closer io.Closer
}

// peekedInput is an opened input whose header bytes have been read ahead.
type peekedInput struct {
	src     *bufio.Reader
	peek    string
	decoder driven.TextDecoder
	closer  io.Closer
}

// peekInput opens name and reads up to opts.PeekSize bytes ahead without
// consuming them.
func (s *DocumentService) peekInput(name string, opts domain.ReadOptions) (*peekedInput, error) {
	if s.opener == nil {
		return nil, fmt.Errorf("%w: no source opener configured", domain.ErrInvalidInput)
	}

	opts = opts.Normalised()
	decoder, err := s.decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	rc, err := s.opener.Open(name)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(rc, opts.PeekSize)
	peek, err := br.Peek(opts.PeekSize)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = rc.Close()
		return nil, fmt.Errorf("peek %s: %w", name, err)
	}
	logger.Debug("peeked %d bytes from %s", len(peek), name)

	return &peekedInput{src: br, peek: string(peek), decoder: decoder, closer: rc}, nil
}

// open peeks at name and prepares a segment reader. Detection failures come
// back as *domain.HeaderError after the skip diagnostic.
func (s *DocumentService) open(name string, opts domain.ReadOptions) (*openedDocument, error) {
	in, err := s.peekInput(name, opts)
	if err != nil {
		return nil, err
	}

	reader, err := s.detector.Read(in.src, in.peek, name, WithDecoder(in.decoder))
	if err != nil {
		_ = in.closer.Close()
		return nil, err
	}
	return &openedDocument{reader: reader, closer: in.closer}, nil
}

func (s *DocumentService) decoder(name string) (driven.TextDecoder, error) {
	if s.decoders == nil {
		if name != domain.DefaultEncoding {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedEncoding, name)
		}
		return lossyUTF8{}, nil
	}
	return s.decoders.Decoder(name)
}

// Detect opens name and returns the separators of its header.
// Nothing is read past the peeked header.
func (s *DocumentService) Detect(
	_ context.Context, name string, opts domain.ReadOptions,
) (*domain.Separator, error) {
	in, err := s.peekInput(name, opts)
	if err != nil {
		return nil, err
	}
	defer in.closer.Close()

	return s.detector.Detect(in.peek)
}

// Cat reads each input in order and passes every segment to emit.
func (s *DocumentService) Cat(
	ctx context.Context, names []string, opts domain.ReadOptions, emit driving.EmitFunc,
) *domain.CatReport {
	if len(names) == 0 {
		names = []string{driven.StdinName}
	}

	report := &domain.CatReport{Files: make([]domain.FileReport, 0, len(names))}
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		logger.Section(name)
		fr := s.catOne(ctx, name, opts, emit)
		report.Files = append(report.Files, fr)
		if fr.Interrupted {
			report.Stopped = true
			break
		}
	}
	return report
}

func (s *DocumentService) catOne(
	ctx context.Context, name string, opts domain.ReadOptions, emit driving.EmitFunc,
) domain.FileReport {
	fr := domain.FileReport{Name: name}

	doc, err := s.open(name, opts)
	if err != nil {
		var headerErr *domain.HeaderError
		if errors.As(err, &headerErr) {
			fr.Skipped = true
			return fr
		}
		s.diag(fmt.Sprintf("Error processing %s: %v", name, err))
		fr.Err = err
		return fr
	}
	defer doc.closer.Close()

	fr.Format = doc.reader.Separator().Format
	for segment := range doc.reader.All() {
		if err := ctx.Err(); err != nil {
			fr.Err = err
			return fr
		}
		if err := emit(name, fr.Segments+1, segment); err != nil {
			if errors.Is(err, domain.ErrOutputClosed) {
				fr.Interrupted = true
				return fr
			}
			s.diag(fmt.Sprintf("Error processing %s: %v", name, err))
			fr.Err = err
			return fr
		}
		fr.Segments++
	}

	fr.ReadErr = doc.reader.Err()
	logger.Info("%s: %d segments", name, fr.Segments)
	return fr
}

// Segments reads a whole document into memory.
func (s *DocumentService) Segments(
	ctx context.Context, name string, opts domain.ReadOptions,
) (*domain.Separator, []string, error) {
	doc, err := s.open(name, opts)
	if err != nil {
		return nil, nil, err
	}
	defer doc.closer.Close()

	var segments []string
	for segment := range doc.reader.All() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		segments = append(segments, segment)
	}
	if err := doc.reader.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", name, err)
	}

	sep := doc.reader.Separator()
	return &sep, segments, nil
}
