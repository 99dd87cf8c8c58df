// Package openai implements the ai interfaces against OpenAI-compatible
// APIs via langchaingo. It covers DashScope's compatible mode as well as
// local servers (Ollama, vLLM) that speak the same protocol.
package openai
