// Package openai implements [storee.Gateway], [storee.Transcriber] and
// [storee.Embedder] over the OpenAI API using github.com/sashabaranov/go-openai.
package openai

import openai "github.com/sashabaranov/go-openai"

const (
	defaultModel          = openai.GPT4
	defaultMaxTokens      = 1024
	transcriptionModel    = openai.Whisper1
	defaultEmbeddingModel = openai.SmallEmbedding3
)
