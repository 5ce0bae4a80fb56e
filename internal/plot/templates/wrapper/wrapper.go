package templates

const WrapperTemplate = `% Generated on {{.GeneratedDate}}
% Chart: {{.Label}}
\begin{center}
    \begin{figure}[H]
    \centering
    \resizebox{1\linewidth}{!}{\input{./{{.PlotFileName}} }}
    \caption[{{.ShortCaption}}]{ {{.Caption}} }
    \label{fig:{{.Label}}}
    \end{figure}
\end{center}
`

type WrapperData struct {
	GeneratedDate string
	Label         string
	PlotFileName  string
	ShortCaption  string
	Caption       string
}
