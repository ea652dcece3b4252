// Package acceptance executa os cenários Gherkin de features/ contra os serviços
// montados sobre o armazenamento em memória.
package acceptance
